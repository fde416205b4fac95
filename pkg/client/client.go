// Package client implements the wire engine: HttpClient and the
// per-exchange connection logic that validates, rewrites, frames, writes,
// and reads a single HTTP/1.1 request/response exchange.
package client

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/go-httpcore/httpcore/pkg/cookiejar"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/timing"
	"github.com/go-httpcore/httpcore/pkg/uri"
	"github.com/go-httpcore/httpcore/pkg/wsupgrade"
)

// HttpClient drives request/response exchanges over one connection per
// call; no state is shared between concurrent calls beyond the immutable
// config snapshot, the filter lists, and an atomic request counter (spec
// §5 "concurrency & resource model").
type HttpClient struct {
	id      uint32
	nextReq uint32
	config  ClientConfig
}

// NewClient builds an HttpClient from DefaultClientConfig with opts
// applied in order.
func NewClient(opts ...Option) *HttpClient {
	cfg := DefaultClientConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &HttpClient{id: newClientID(), config: cfg}
}

func newClientID() uint32 {
	u := uuid.New()
	return binary.BigEndian.Uint32(u[:4])
}

// correlate builds the per-request tag
// "{wallclock_ms:hex}-{clientId:04x}-{requestId:04x}".
func (c *HttpClient) correlate() string {
	ms := time.Now().UnixMilli()
	reqID := atomic.AddUint32(&c.nextReq, 1)
	return fmt.Sprintf("%x-%04x-%04x", ms, uint16(c.id), uint16(reqID))
}

// Send performs one exchange and passes the response to handler exactly
// once, closing the connection when handler returns.
func Send[T any](ctx context.Context, c *HttpClient, req message.HttpRequest, handler func(message.HttpResponse) (T, error)) (T, error) {
	var zero T
	resp, conn, err := c.exchange(ctx, req)
	if err != nil {
		return zero, err
	}
	defer conn.Close()
	defer resp.Body.Close()
	return handler(resp)
}

// exchange runs validation, rewriting, framing, writing, and reading for
// req, returning the parsed response and the live connection (which the
// caller must close once the body has been consumed or abandoned).
func (c *HttpClient) exchange(ctx context.Context, req message.HttpRequest) (message.HttpResponse, net.Conn, error) {
	logger := c.config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validateTarget(req); err != nil {
		return message.HttpResponse{}, nil, err
	}

	absoluteTarget := req.Target
	req = req.PutAttributes(message.Attributes{
		message.AttrAbsoluteTarget: absoluteTarget,
		message.AttrCorrelate:      c.correlate(),
		message.AttrClient:         c,
	})

	req = c.withCookies(req)
	req = rewriteRequest(req, c.config.UserAgent)
	req = c.withAcceptEncoding(req)

	var err error
	req, err = frameBody(req)
	if err != nil {
		return message.HttpResponse{}, nil, err
	}

	for _, f := range c.config.Outgoing {
		req = f(req)
	}

	useTLS := absoluteTarget.Scheme == "https" || absoluteTarget.Scheme == "wss"
	port := absoluteTarget.EffectivePort()

	timer := timing.NewTimer()
	conn, err := c.config.Dialer.Dial(ctx, absoluteTarget.Host, port, useTLS, timer)
	if err != nil {
		logger.Warn("dial failed", zap.String("host", absoluteTarget.Host), zap.Error(err))
		return message.HttpResponse{}, nil, err
	}
	logger.Debug("connected", zap.String("host", absoluteTarget.Host), zap.Int("port", port))

	w := bufio.NewWriterSize(conn, max(c.config.BufferSize, 4096))
	timer.StartTTFB()
	early, err := writeRequest(w, conn, req, c.config.ContinueTimeout, timer)
	if err != nil {
		conn.Close()
		logger.Warn("write failed", zap.Error(err))
		return message.HttpResponse{}, nil, err
	}

	var resp message.HttpResponse
	if early != nil {
		resp = *early
	} else {
		resp, err = readResponse(conn, req, c.config.ReadTimeout)
	}
	timer.EndTTFB()
	if err != nil {
		conn.Close()
		logger.Warn("read failed", zap.Error(err))
		return message.HttpResponse{}, nil, err
	}

	resp, err = decodeResponseBody(resp, c.config.MaxBodyLength)
	if err != nil {
		conn.Close()
		logger.Warn("decode failed", zap.Error(err))
		return message.HttpResponse{}, nil, err
	}

	resp = resp.PutAttributes(message.Attributes{
		message.AttrSocket:          conn,
		message.AttrResponseRequest: req,
		message.AttrCorrelate:       mustCorrelate(req),
	})

	c.config.CookieStore.Put(absoluteTarget, parseSetCookies(resp.Headers))

	for _, f := range c.config.Incoming {
		resp = f(resp)
	}

	return resp, conn, nil
}

func mustCorrelate(req message.HttpRequest) string {
	v, _ := req.Attributes.Get(message.AttrCorrelate)
	s, _ := v.(string)
	return s
}

func (c *HttpClient) withCookies(req message.HttpRequest) message.HttpRequest {
	cookies := c.config.CookieStore.Get(req.Target)
	if len(cookies) == 0 {
		return req
	}
	return req.PutHeaders(header.Header{Name: "Cookie", Value: cookiejar.FormatCookieHeader(cookies)})
}

func (c *HttpClient) withAcceptEncoding(req message.HttpRequest) message.HttpRequest {
	if len(c.config.AcceptEncodings) == 0 || req.Headers.Has("Accept-Encoding") {
		return req
	}
	parts := make([]string, len(c.config.AcceptEncodings))
	for i, r := range c.config.AcceptEncodings {
		parts[i] = r.String()
	}
	joined := parts[0]
	for _, p := range parts[1:] {
		joined += ", " + p
	}
	return req.PutHeaders(header.Header{Name: "Accept-Encoding", Value: joined})
}

func parseSetCookies(h header.List) []cookiejar.SetCookie {
	vals := h.GetAll("Set-Cookie")
	out := make([]cookiejar.SetCookie, len(vals))
	for i, v := range vals {
		out[i] = cookiejar.ParseSetCookie(v)
	}
	return out
}

// UpgradeWebSocket performs the handshake for a ws/wss target and, once
// Sec-WebSocket-Accept has been verified, returns the Session that factory
// builds over the live socket.
func (c *HttpClient) UpgradeWebSocket(ctx context.Context, target uri.Uri, factory wsupgrade.SessionFactory) (wsupgrade.Session, error) {
	req, key, err := wsupgrade.BuildRequest(target)
	if err != nil {
		return nil, err
	}
	resp, conn, err := c.exchange(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := wsupgrade.VerifyHandshake(resp, key); err != nil {
		conn.Close()
		return nil, err
	}
	correlateVal, _ := resp.Attributes.Get(message.AttrCorrelate)
	correlate, _ := correlateVal.(string)
	return factory.ForClient(conn, correlate, target, "13")
}
