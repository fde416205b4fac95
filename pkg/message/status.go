package message

import (
	"strconv"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
)

// ResponseStatus is a status line's numeric code plus reason phrase.
type ResponseStatus struct {
	Code   int
	Reason string
}

// NewStatus validates code is in [100,599] and pairs it with reason.
func NewStatus(code int, reason string) (ResponseStatus, error) {
	if code < 100 || code > 599 {
		return ResponseStatus{}, errors.InvalidSyntax("status-code out of range: " + strconv.Itoa(code))
	}
	return ResponseStatus{Code: code, Reason: reason}, nil
}

func (s ResponseStatus) IsInformational() bool { return s.Code >= 100 && s.Code < 200 }
func (s ResponseStatus) IsSuccessful() bool    { return s.Code >= 200 && s.Code < 300 }
func (s ResponseStatus) IsRedirection() bool   { return s.Code >= 300 && s.Code < 400 }
func (s ResponseStatus) IsClientError() bool   { return s.Code >= 400 && s.Code < 500 }
func (s ResponseStatus) IsServerError() bool   { return s.Code >= 500 && s.Code < 600 }
func (s ResponseStatus) IsError() bool         { return s.Code >= 400 }

// HasNoBody reports whether responses with this status never carry a body
// regardless of framing headers.
func (s ResponseStatus) HasNoBody() bool {
	return s.IsInformational() || s.Code == 204 || s.Code == 304
}

func (s ResponseStatus) String() string {
	return strconv.Itoa(s.Code) + " " + s.Reason
}

// ParseStatusLine parses "HTTP-version SP status-code [SP reason]".
func ParseStatusLine(line string) (HttpVersion, ResponseStatus, error) {
	line = strings.TrimRight(line, "\r\n")
	versionPart, rest, ok := strings.Cut(line, " ")
	if !ok {
		return HttpVersion{}, ResponseStatus{}, errors.InvalidSyntax("status-line: " + line)
	}
	v, err := ParseVersion(versionPart)
	if err != nil {
		return HttpVersion{}, ResponseStatus{}, err
	}
	codePart, reason, _ := strings.Cut(rest, " ")
	code, err := strconv.Atoi(codePart)
	if err != nil {
		return HttpVersion{}, ResponseStatus{}, errors.InvalidSyntax("status-code: " + line)
	}
	status, err := NewStatus(code, reason)
	if err != nil {
		return HttpVersion{}, ResponseStatus{}, err
	}
	return v, status, nil
}

// Common status instances used throughout the engine and tests.
var (
	StatusContinue            = ResponseStatus{100, "Continue"}
	StatusOK                  = ResponseStatus{200, "OK"}
	StatusCreated             = ResponseStatus{201, "Created"}
	StatusNoContent           = ResponseStatus{204, "No Content"}
	StatusNotModified         = ResponseStatus{304, "Not Modified"}
	StatusBadRequest          = ResponseStatus{400, "Bad Request"}
	StatusUnauthorized        = ResponseStatus{401, "Unauthorized"}
	StatusExpectationFailed   = ResponseStatus{417, "Expectation Failed"}
	StatusInternalServerError = ResponseStatus{500, "Internal Server Error"}
)
