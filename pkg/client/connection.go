package client

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-httpcore/httpcore/pkg/body"
	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/stream"
	"github.com/go-httpcore/httpcore/pkg/timing"
)

var validSchemes = map[string]bool{"http": true, "https": true, "ws": true, "wss": true}

// validateTarget requires that target be absolute with a recognized
// scheme.
func validateTarget(req message.HttpRequest) error {
	if !req.Target.IsAbsolute() {
		return errors.RequestAborted("target must be absolute")
	}
	if !validSchemes[req.Target.Scheme] {
		return errors.RequestAborted("unsupported scheme: " + req.Target.Scheme)
	}
	return nil
}

// rewriteRequest produces the effective request: canonical
// Host/User-Agent/Connection, origin-form target.
func rewriteRequest(req message.HttpRequest, userAgent string) message.HttpRequest {
	host := req.Target.Host
	if req.Target.HasPort {
		host = req.Target.Authority()
	}

	existingUA, hasUA := req.Headers.Get("User-Agent")
	ua := userAgent
	if hasUA && existingUA != "" {
		ua = existingUA
	}

	existingConnection := message.Connection(req)
	hasTE := req.Headers.Has("TE")

	var kept []string
	for _, tok := range existingConnection {
		lower := strings.ToLower(tok)
		if lower == "close" || lower == "keep-alive" || lower == "te" {
			continue
		}
		kept = append(kept, tok)
	}
	if hasTE {
		kept = append(kept, "TE")
	}
	kept = append(kept, "close")

	cleaned := req.Headers.Remove("Host", "User-Agent", "Connection")
	newHeaders := header.List{{Name: "Host", Value: host}, {Name: "User-Agent", Value: ua}}
	newHeaders = append(newHeaders, cleaned...)
	newHeaders = append(newHeaders, header.Header{Name: "Connection", Value: strings.Join(kept, ", ")})

	req.Headers = newHeaders

	path := req.Path()
	if path != "*" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req.Target.Path = path

	return req
}

// frameBody chooses Content-Length or chunked framing by method and body
// shape, returning the request with final framing headers and (for
// bodiless methods) its body dropped.
func frameBody(req message.HttpRequest) (message.HttpRequest, error) {
	if req.Method.IsBodiless() {
		req.Body = message.EmptyEntity
		req.Headers = req.Headers.Remove("Content-Length", "Transfer-Encoding")
		return req, nil
	}

	if req.Headers.Has("Transfer-Encoding") {
		codings, err := message.TransferEncoding(req)
		if err != nil {
			return req, err
		}
		if len(codings) == 0 || !strings.EqualFold(codings[len(codings)-1].Name, "chunked") {
			codings = append(codings, header.TransferCoding{Name: "chunked"})
		}
		parts := make([]string, len(codings))
		for i, c := range codings {
			parts[i] = c.String()
		}
		req.Headers = req.Headers.Remove("Content-Length").Set("Transfer-Encoding", strings.Join(parts, ", "))
		return req, nil
	}

	if cl, ok := req.Headers.Get("Content-Length"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64)
		if err != nil {
			return req, errors.InvalidSyntax("content-length: " + cl)
		}
		if n < 0 {
			return req, errors.RequestAborted("negative content-length")
		}
		if n == 0 {
			req.Body = message.EmptyEntity
		}
		return req, nil
	}

	if size, ok := req.Body.KnownSize(); ok {
		req.Headers = req.Headers.Set("Content-Length", strconv.FormatInt(size, 10))
		return req, nil
	}

	req.Headers = req.Headers.Set("Transfer-Encoding", "chunked")
	return req, nil
}

// writeRequest emits the request line, headers, blank line, and body onto
// w, handling Expect: 100-continue coordination. conn is
// used to read the interim response; continueTimeout bounds that read. If
// the server answers the Expect probe with a non-informational status
// instead of "100 Continue", that status is already fully consumed off
// the wire and is returned as the exchange's real response so the caller
// does not attempt to read a second one that will never arrive.
func writeRequest(w *bufio.Writer, conn net.Conn, req message.HttpRequest, continueTimeout time.Duration, timer *timing.Timer) (*message.HttpResponse, error) {
	if _, err := w.WriteString(req.RequestLine() + "\r\n"); err != nil {
		return nil, errors.Wrap(errors.KindIOError, "write", "request line", err)
	}
	for _, h := range req.Headers {
		if _, err := w.WriteString(h.Name + ": " + h.Value + "\r\n"); err != nil {
			return nil, errors.Wrap(errors.KindIOError, "write", "header", err)
		}
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return nil, errors.Wrap(errors.KindIOError, "write", "blank line", err)
	}
	if err := w.Flush(); err != nil {
		return nil, errors.Wrap(errors.KindIOError, "write", "flush headers", err)
	}

	if req.Body.IsKnownEmpty() {
		return nil, nil
	}

	if message.HasExpectContinue(req) {
		proceed, early, err := awaitContinue(conn, continueTimeout)
		if err != nil {
			return nil, err
		}
		if early != nil {
			return early, nil
		}
		if !proceed {
			return nil, nil
		}
	}

	return nil, writeBody(w, req)
}

// awaitContinue waits up to timeout for a "100 Continue" interim response.
// It returns proceed=true if the body should now be sent. If the server
// answers with some other status instead, that status/headers/body are
// returned as early, and the caller must treat it as the final response
// rather than sending the body or reading again.
func awaitContinue(conn net.Conn, timeout time.Duration) (proceed bool, early *message.HttpResponse, err error) {
	conn.SetReadDeadline(time.Now().Add(timeout))
	defer conn.SetReadDeadline(time.Time{})

	hr := stream.NewHeaderStreamReader(conn)
	line, err := hr.ReadStartLine()
	if err != nil {
		if errors.IsTimeout(err) {
			return true, nil, nil
		}
		return false, nil, err
	}
	version, status, err := message.ParseStatusLine(line)
	if err != nil {
		return false, nil, err
	}
	headers, err := hr.ReadHeaders()
	if err != nil {
		return false, nil, err
	}
	if status.IsInformational() {
		return true, nil, nil
	}

	resp := message.HttpResponse{Version: version, Status: status, Headers: headers, Body: message.EmptyEntity}
	if !status.HasNoBody() {
		resp.Body = message.NewEntity(readCloser{Reader: conn})
	}
	return false, &resp, nil
}

func writeBody(w *bufio.Writer, req message.HttpRequest) error {
	defer req.Body.Close()
	chunked := message.IsChunked(req)
	if chunked {
		return writeChunkedBody(w, req.Body)
	}
	if _, err := copyBuffered(w, req.Body); err != nil {
		return errors.Wrap(errors.KindIOError, "write", "body", err)
	}
	return w.Flush()
}

func writeChunkedBody(w *bufio.Writer, body message.Entity) error {
	buf := make([]byte, 32*1024)
	r := body.Reader()
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.WriteString(strconv.FormatUint(uint64(n), 16) + "\r\n"); werr != nil {
				return errors.Wrap(errors.KindIOError, "write", "chunk size", werr)
			}
			if _, werr := w.Write(buf[:n]); werr != nil {
				return errors.Wrap(errors.KindIOError, "write", "chunk data", werr)
			}
			if _, werr := w.WriteString("\r\n"); werr != nil {
				return errors.Wrap(errors.KindIOError, "write", "chunk terminator", werr)
			}
		}
		if err != nil {
			break
		}
	}
	if _, err := w.WriteString("0\r\n\r\n"); err != nil {
		return errors.Wrap(errors.KindIOError, "write", "final chunk", err)
	}
	return w.Flush()
}

func copyBuffered(w *bufio.Writer, body message.Entity) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	r := body.Reader()
	for {
		n, err := r.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

// readResponse parses the status line and headers from conn, attaching the
// remaining bytes as resp.Body unwrapped. For HEAD requests and no-body
// statuses the body is forced empty. Callers must run the result through
// decodeResponseBody before handing it to a handler.
func readResponse(conn net.Conn, req message.HttpRequest, readTimeout time.Duration) (message.HttpResponse, error) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	hr := stream.NewHeaderStreamReader(conn)
	line, err := hr.ReadStartLine()
	if err != nil {
		return message.HttpResponse{}, errors.Wrap(errors.KindIOError, "read", "status line", err)
	}
	version, status, err := message.ParseStatusLine(line)
	if err != nil {
		return message.HttpResponse{}, err
	}
	headers, err := hr.ReadHeaders()
	if err != nil {
		return message.HttpResponse{}, err
	}

	resp := message.HttpResponse{Version: version, Status: status, Headers: headers, Body: message.EmptyEntity}
	if req.Method.Name != "HEAD" && !status.HasNoBody() {
		resp.Body = message.NewEntity(readCloser{Reader: conn})
	}
	return resp, nil
}

// decodeResponseBody decodes resp.Body, honoring transfer and content
// codings and bounding to maxBodyLength.
func decodeResponseBody(resp message.HttpResponse, maxBodyLength int64) (message.HttpResponse, error) {
	if resp.Body.IsKnownEmpty() {
		return resp, nil
	}
	decoded, err := body.NewDecoder(maxBodyLength).DecodeResponse(resp)
	if err != nil {
		return message.HttpResponse{}, err
	}
	resp.Body = message.NewEntity(decoded)
	return resp, nil
}

// readCloser adapts conn (whose Close would tear down the socket) to the
// io.ReadCloser an Entity expects, deferring actual connection lifetime to
// the caller of exchange; closing it here is a no-op.
type readCloser struct{ io.Reader }

func (readCloser) Close() error { return nil }
