// Package wsupgrade implements the WebSocket upgrade handshake: generating
// the Sec-WebSocket-Key, validating the server's Sec-WebSocket-Accept, and
// the session-factory collaborator invoked once the handshake succeeds.
// The session implementation itself (framing, ping/pong, close codes) is
// out of scope; only the handshake is implemented here.
package wsupgrade

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"net"
	"strings"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/header"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/uri"
)

// acceptGUID is the fixed GUID RFC 6455 §1.3 appends to the client key
// before hashing.
const acceptGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateKey returns a freshly generated, base64-encoded 16-byte
// Sec-WebSocket-Key.
func GenerateKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(errors.KindWebSocketHandshakeFailure, "upgrade", "generate key", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ExpectedAccept computes the Sec-WebSocket-Accept value the server must
// return for the given client key.
func ExpectedAccept(key string) string {
	sum := sha1.Sum([]byte(key + acceptGUID))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// BuildRequest returns a GET request carrying the upgrade headers for
// target, and the key it generated (callers must verify the response
// against this same key).
func BuildRequest(target uri.Uri) (message.HttpRequest, string, error) {
	key, err := GenerateKey()
	if err != nil {
		return message.HttpRequest{}, "", err
	}
	req := message.NewRequest(message.MethodGet, target).PutHeaders(
		header.Header{Name: "Upgrade", Value: "websocket"},
		header.Header{Name: "Connection", Value: "Upgrade"},
		header.Header{Name: "Sec-WebSocket-Key", Value: key},
		header.Header{Name: "Sec-WebSocket-Version", Value: "13"},
	)
	return req, key, nil
}

// VerifyHandshake checks resp against the handshake invariants: status
// 101, Upgrade: websocket, Connection: Upgrade, and a matching
// Sec-WebSocket-Accept.
func VerifyHandshake(resp message.HttpResponse, key string) error {
	if resp.Status.Code != 101 {
		return errors.WebSocketHandshakeFailure("expected status 101, got " + resp.Status.String())
	}
	if !hasToken(resp.Headers, "Upgrade", "websocket") {
		return errors.WebSocketHandshakeFailure("missing or mismatched Upgrade header")
	}
	if !hasToken(resp.Headers, "Connection", "Upgrade") {
		return errors.WebSocketHandshakeFailure("missing or mismatched Connection header")
	}
	accept, ok := resp.Headers.Get("Sec-WebSocket-Accept")
	if !ok || accept != ExpectedAccept(key) {
		return errors.WebSocketHandshakeFailure("Sec-WebSocket-Accept mismatch")
	}
	return nil
}

func hasToken(h header.List, name, token string) bool {
	v, ok := h.Get(name)
	if !ok {
		return false
	}
	for _, part := range strings.Split(v, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// SessionFactory builds a Session once a handshake has succeeded. No
// implementation ships; callers supply their own.
type SessionFactory interface {
	ForClient(conn net.Conn, correlate string, target uri.Uri, version string) (Session, error)
}

// Session is the post-handshake WebSocket connection contract; framing,
// ping/pong, and close-code handling are left to the caller's
// implementation.
type Session interface {
	Send(message []byte) error
	Receive() ([]byte, error)
	Close() error
}
