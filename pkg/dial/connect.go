package dial

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/message"
	"github.com/go-httpcore/httpcore/pkg/stream"
	"github.com/go-httpcore/httpcore/pkg/timing"
	"github.com/go-httpcore/httpcore/pkg/tlsprovider"
)

// dialConnect reaches host:port through an HTTP proxy's CONNECT method,
// writing the tunnel request directly (rather than through the full wire
// engine, which would need the tunneled connection to exist first) and
// reading the proxy's status line with the same header-block reader the
// engine uses for ordinary responses.
func (p *Proxied) dialConnect(ctx context.Context, host string, port int, useTLS bool, timer *timing.Timer) (net.Conn, error) {
	inner := p.Inner
	if inner == nil {
		inner = NewTCPDialer(nil)
	}

	if timer != nil {
		timer.StartTCP()
	}
	proxyHost, proxyPort, err := net.SplitHostPort(p.ProxyAddr)
	if err != nil {
		return nil, errors.InvalidSyntax("proxy address: " + p.ProxyAddr)
	}
	conn, err := inner.Dial(ctx, proxyHost, atoiPort(proxyPort), p.ProxyUseTLS, nil)
	if timer != nil {
		timer.EndTCP()
	}
	if err != nil {
		return nil, err
	}

	target := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	req := "CONNECT " + target + " HTTP/1.1\r\nHost: " + target + "\r\n"
	if p.Username != "" {
		req += "Proxy-Authorization: Basic " + basicAuth(p.Username, p.Password) + "\r\n"
	}
	req += "\r\n"

	if _, err := conn.Write([]byte(req)); err != nil {
		conn.Close()
		return nil, errors.Wrap(errors.KindIOError, "dial", "write connect request", err)
	}

	hr := stream.NewHeaderStreamReader(conn)
	statusLine, err := hr.ReadStartLine()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(errors.KindIOError, "dial", "read connect response", err)
	}
	_, status, err := message.ParseStatusLine(statusLine)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := hr.ReadHeaders(); err != nil {
		conn.Close()
		return nil, err
	}
	if !status.IsSuccessful() {
		conn.Close()
		return nil, errors.Wrap(errors.KindIOError, "dial", "proxy refused connect: "+status.String(), nil)
	}

	if !useTLS {
		return conn, nil
	}

	tlsStore := inner.TLS
	if tlsStore == nil {
		tlsStore = tlsprovider.DefaultStore{}
	}
	cfg, err := tlsStore.Build(host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if timer != nil {
		timer.StartTLS()
	}
	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(errors.KindIOError, "dial", "tls handshake failed", err)
	}
	if timer != nil {
		timer.EndTLS()
	}
	return tlsConn, nil
}

func atoiPort(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func basicAuth(user, pass string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
}
