// Package dial provides the pluggable socket factory the wire engine dials
// through: a plain TCP/TLS dialer by default, or one wrapped with a SOCKS5
// or HTTP CONNECT proxy strategy. No connection pooling is implemented
// here; the engine opens one connection per exchange and closes it.
package dial

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	netproxy "golang.org/x/net/proxy"

	"github.com/go-httpcore/httpcore/pkg/constants"
	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/timing"
	"github.com/go-httpcore/httpcore/pkg/tlsprovider"
)

// Dialer opens a connection to host:port, upgrading to TLS when
// useTLS is set, and records DNS/TCP/TLS timings on timer.
type Dialer interface {
	Dial(ctx context.Context, host string, port int, useTLS bool, timer *timing.Timer) (net.Conn, error)
}

// TCPDialer is the default Dialer: stdlib net.Dialer for the TCP leg, an
// optional tlsprovider.Store for the TLS leg.
type TCPDialer struct {
	Resolver *net.Resolver
	TLS      tlsprovider.Store
	// ConnectTimeout bounds the TCP leg when ctx carries no deadline.
	// Zero means constants.DefaultConnTimeout.
	ConnectTimeout time.Duration
}

// NewTCPDialer builds a TCPDialer using the given TLS provider, or a
// platform-default store when tlsStore is nil.
func NewTCPDialer(tlsStore tlsprovider.Store) *TCPDialer {
	if tlsStore == nil {
		tlsStore = tlsprovider.DefaultStore{}
	}
	return &TCPDialer{TLS: tlsStore}
}

func (d *TCPDialer) Dial(ctx context.Context, host string, port int, useTLS bool, timer *timing.Timer) (net.Conn, error) {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := d.ConnectTimeout
		if timeout <= 0 {
			timeout = constants.DefaultConnTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	nd := &net.Dialer{Resolver: d.Resolver}
	if timer != nil {
		timer.StartTCP()
	}
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if timer != nil {
		timer.EndTCP()
	}
	if err != nil {
		return nil, errors.Wrap(errors.KindIOError, "dial", "tcp connect failed", err)
	}

	if !useTLS {
		return conn, nil
	}

	cfg, err := d.TLS.Build(host)
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

// ProxyKind selects how Proxied reaches the upstream proxy.
type ProxyKind int

const (
	// ProxySOCKS5 dials through golang.org/x/net/proxy's SOCKS5 client.
	ProxySOCKS5 ProxyKind = iota
	// ProxyConnect dials the proxy in the clear (or via inner.TLS if the
	// proxy itself is HTTPS) then writes a raw CONNECT request and reads
	// the reply with the stream/message status-line parsers, handing the
	// tunneled socket back once the proxy answers 2xx.
	ProxyConnect
)

// Proxied wraps a Dialer with an upstream proxy strategy.
type Proxied struct {
	Kind        ProxyKind
	ProxyAddr   string // "host:port"
	Username    string
	Password    string
	Inner       *TCPDialer // used for ProxyConnect's initial leg and its own TLS
	ProxyUseTLS bool       // ProxyConnect only: proxy itself is reached over TLS
}

func (p *Proxied) Dial(ctx context.Context, host string, port int, useTLS bool, timer *timing.Timer) (net.Conn, error) {
	switch p.Kind {
	case ProxySOCKS5:
		return p.dialSOCKS5(ctx, host, port, useTLS, timer)
	case ProxyConnect:
		return p.dialConnect(ctx, host, port, useTLS, timer)
	default:
		return nil, errors.RequestAborted("unknown proxy kind")
	}
}

func (p *Proxied) dialSOCKS5(ctx context.Context, host string, port int, useTLS bool, timer *timing.Timer) (net.Conn, error) {
	var auth *netproxy.Auth
	if p.Username != "" {
		auth = &netproxy.Auth{User: p.Username, Password: p.Password}
	}
	if timer != nil {
		timer.StartTCP()
	}
	socksDialer, err := netproxy.SOCKS5("tcp", p.ProxyAddr, auth, &net.Dialer{})
	if err != nil {
		return nil, errors.Wrap(errors.KindIOError, "dial", "build socks5 dialer", err)
	}
	conn, err := socksDialer.Dial("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if timer != nil {
		timer.EndTCP()
	}
	if err != nil {
		return nil, errors.Wrap(errors.KindIOError, "dial", "socks5 connect failed", err)
	}
	if !useTLS {
		return conn, nil
	}
	tlsStore := p.Inner.TLS
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
