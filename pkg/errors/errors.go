// Package errors provides the structured error taxonomy used throughout
// httpcore, from grammar-level syntax failures up through wire I/O.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Kind classifies the error so callers can branch without string matching.
type Kind string

const (
	// KindInvalidSyntax marks header or value text that fails grammar.
	KindInvalidSyntax Kind = "invalid_syntax"
	// KindHeaderNotFound marks a typed accessor invoked on an absent header.
	KindHeaderNotFound Kind = "header_not_found"
	// KindRequestAborted marks pre-send validation failures.
	KindRequestAborted Kind = "request_aborted"
	// KindReadLimitExceeded marks a bounded stream exceeding its ceiling.
	KindReadLimitExceeded Kind = "read_limit_exceeded"
	// KindEntityTooLarge marks a decoded body exceeding a parser's maxLength.
	KindEntityTooLarge Kind = "entity_too_large"
	// KindTruncationDetected marks EOF mid chunk or mid fixed-length payload.
	KindTruncationDetected Kind = "truncation_detected"
	// KindUnsupportedEncoding marks an unrecognized transfer/content coding.
	KindUnsupportedEncoding Kind = "unsupported_encoding"
	// KindWebSocketHandshakeFailure marks a failed Upgrade handshake.
	KindWebSocketHandshakeFailure Kind = "websocket_handshake_failure"
	// KindIOError marks an underlying socket/TLS failure.
	KindIOError Kind = "io_error"
)

// Error is a structured error with enough context to act on programmatically
// and enough text to be useful in a log line.
type Error struct {
	Kind      Kind
	Op        string
	Message   string
	Cause     error
	Detail    string // e.g. the offending header name, limit, or encoding
	Timestamp time.Time
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Kind))
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	s := strings.Join(parts, " ")
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches by Kind, ignoring message/cause, so callers can write
// errors.Is(err, errors.New(KindEntityTooLarge, "", "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an Error of the given kind.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Timestamp: time.Now()}
}

// Wrap constructs an Error of the given kind around a cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause, Timestamp: time.Now()}
}

// InvalidSyntax builds a KindInvalidSyntax error naming the malformed input.
func InvalidSyntax(what string) *Error {
	return &Error{Kind: KindInvalidSyntax, Op: "parse", Message: "invalid syntax", Detail: what, Timestamp: time.Now()}
}

// HeaderNotFound builds a KindHeaderNotFound error naming the header.
func HeaderNotFound(name string) *Error {
	return &Error{Kind: KindHeaderNotFound, Op: "header", Message: "header not present", Detail: name, Timestamp: time.Now()}
}

// RequestAborted builds a KindRequestAborted error with the given reason.
func RequestAborted(reason string) *Error {
	return &Error{Kind: KindRequestAborted, Op: "validate", Message: reason, Timestamp: time.Now()}
}

// ReadLimitExceeded builds a KindReadLimitExceeded error for the given limit.
func ReadLimitExceeded(limit int64) *Error {
	return &Error{Kind: KindReadLimitExceeded, Op: "read", Message: fmt.Sprintf("exceeded read limit of %d bytes", limit), Timestamp: time.Now()}
}

// EntityTooLarge builds a KindEntityTooLarge error for the given maxLength.
func EntityTooLarge(max int64) *Error {
	return &Error{Kind: KindEntityTooLarge, Op: "decode", Message: fmt.Sprintf("entity exceeds maximum of %d bytes", max), Timestamp: time.Now()}
}

// TruncationDetected builds a KindTruncationDetected error.
func TruncationDetected(op string) *Error {
	return &Error{Kind: KindTruncationDetected, Op: op, Message: "unexpected EOF before terminator", Timestamp: time.Now()}
}

// UnsupportedEncoding builds a KindUnsupportedEncoding error for the coding.
func UnsupportedEncoding(name string) *Error {
	return &Error{Kind: KindUnsupportedEncoding, Op: "decode", Message: "unsupported encoding", Detail: name, Timestamp: time.Now()}
}

// WebSocketHandshakeFailure builds a KindWebSocketHandshakeFailure error.
func WebSocketHandshakeFailure(reason string) *Error {
	return &Error{Kind: KindWebSocketHandshakeFailure, Op: "upgrade", Message: reason, Timestamp: time.Now()}
}

// IO builds a KindIOError error wrapping the underlying socket/TLS failure.
func IO(op string, cause error) *Error {
	return &Error{Kind: KindIOError, Op: op, Message: "I/O error", Cause: cause, Timestamp: time.Now()}
}

// IsTimeout reports whether err is a timeout, whether ours, net's, or the
// context package's.
func IsTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsCanceled reports whether err stems from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// KindOf returns the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
