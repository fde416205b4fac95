package client

import (
	"time"

	"go.uber.org/zap"

	"github.com/go-httpcore/httpcore/pkg/constants"
	"github.com/go-httpcore/httpcore/pkg/cookiejar"
	"github.com/go-httpcore/httpcore/pkg/dial"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/message"
)

// Filter transforms an outgoing request before the engine writes it.
type Filter func(message.HttpRequest) message.HttpRequest

// ResponseFilter transforms a response after headers are parsed, before
// the handler sees it.
type ResponseFilter func(message.HttpResponse) message.HttpResponse

// ClientConfig holds the client's tunable options, plus the ambient
// dialer/logger collaborators.
type ClientConfig struct {
	BufferSize      int
	ReadTimeout     time.Duration
	ContinueTimeout time.Duration
	AcceptEncodings []header.ContentCodingRange
	CookieStore     cookiejar.Store
	Dialer          dial.Dialer
	MaxBodyLength   int64
	Outgoing        []Filter
	Incoming        []ResponseFilter
	Logger          *zap.Logger
	UserAgent       string
}

// DefaultClientConfig returns a ClientConfig with sane defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BufferSize:      constants.DefaultIOBufferSize,
		ReadTimeout:     constants.DefaultReadTimeout,
		ContinueTimeout: constants.DefaultContinueTimeout,
		CookieStore:     cookiejar.NoopStore{},
		Dialer:          dial.NewTCPDialer(nil),
		MaxBodyLength:   constants.DefaultMaxBodyRead,
		Logger:          zap.NewNop(),
		UserAgent:       "httpcore/1.0",
	}
}

// Option configures a ClientConfig; used with NewClient the way the
// teacher's Options struct is populated directly, but as composable
// functions for library callers.
type Option func(*ClientConfig)

func WithBufferSize(n int) Option          { return func(c *ClientConfig) { c.BufferSize = n } }
func WithReadTimeout(d time.Duration) Option {
	return func(c *ClientConfig) { c.ReadTimeout = d }
}
func WithContinueTimeout(d time.Duration) Option {
	return func(c *ClientConfig) { c.ContinueTimeout = d }
}
func WithAcceptEncodings(r ...header.ContentCodingRange) Option {
	return func(c *ClientConfig) { c.AcceptEncodings = r }
}
func WithCookieStore(s cookiejar.Store) Option { return func(c *ClientConfig) { c.CookieStore = s } }
func WithDialer(d dial.Dialer) Option          { return func(c *ClientConfig) { c.Dialer = d } }
func WithMaxBodyLength(n int64) Option         { return func(c *ClientConfig) { c.MaxBodyLength = n } }
func WithLogger(l *zap.Logger) Option {
	return func(c *ClientConfig) {
		if l != nil {
			c.Logger = l
		}
	}
}
func WithUserAgent(ua string) Option { return func(c *ClientConfig) { c.UserAgent = ua } }
func WithOutgoingFilter(f Filter) Option {
	return func(c *ClientConfig) { c.Outgoing = append(c.Outgoing, f) }
}
func WithIncomingFilter(f ResponseFilter) Option {
	return func(c *ClientConfig) { c.Incoming = append(c.Incoming, f) }
}
