// Package message implements the HTTP message model: version, method,
// status, start lines, the lazily-consumed Entity body, HttpRequest and
// HttpResponse, and their typed header accessors.
package message

import (
	"strconv"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
)

// HttpVersion is a protocol version, e.g. HTTP/1.1.
type HttpVersion struct {
	Major int
	Minor int
}

var (
	Version10 = HttpVersion{1, 0}
	Version11 = HttpVersion{1, 1}
	Version20 = HttpVersion{2, 0}
)

func (v HttpVersion) String() string {
	return "HTTP/" + strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// ParseVersion parses "HTTP/major.minor".
func ParseVersion(s string) (HttpVersion, error) {
	const prefix = "HTTP/"
	if !strings.HasPrefix(s, prefix) {
		return HttpVersion{}, errors.InvalidSyntax("http-version: " + s)
	}
	major, minor, ok := strings.Cut(s[len(prefix):], ".")
	if !ok {
		return HttpVersion{}, errors.InvalidSyntax("http-version: " + s)
	}
	ma, err1 := strconv.Atoi(major)
	mi, err2 := strconv.Atoi(minor)
	if err1 != nil || err2 != nil {
		return HttpVersion{}, errors.InvalidSyntax("http-version: " + s)
	}
	return HttpVersion{Major: ma, Minor: mi}, nil
}
