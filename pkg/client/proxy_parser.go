package client

import (
	"net/url"
	"strconv"

	"github.com/go-httpcore/httpcore/pkg/dial"
	"github.com/go-httpcore/httpcore/pkg/errors"
)

// ParseProxyURL parses a proxy URL into a dial.Proxied strategy.
//
// Supported schemes: "socks5://[user:pass@]host:port" (dialed via
// golang.org/x/net/proxy), "http://" and "https://" (dialed via CONNECT,
// the latter reaching the proxy itself over TLS).
func ParseProxyURL(proxyURL string) (*dial.Proxied, error) {
	if proxyURL == "" {
		return nil, errors.RequestAborted("proxy URL cannot be empty")
	}
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, errors.Wrap(errors.KindRequestAborted, "proxy", "invalid proxy URL", err)
	}

	var kind dial.ProxyKind
	var defaultPort int
	switch u.Scheme {
	case "socks5":
		kind, defaultPort = dial.ProxySOCKS5, 1080
	case "http":
		kind, defaultPort = dial.ProxyConnect, 8080
	case "https":
		kind, defaultPort = dial.ProxyConnect, 443
	case "":
		return nil, errors.RequestAborted("proxy URL must include scheme (socks5://, http://, or https://)")
	default:
		return nil, errors.RequestAborted("unsupported proxy scheme: " + u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, errors.RequestAborted("proxy URL must include host")
	}

	port := defaultPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p < 1 || p > 65535 {
			return nil, errors.RequestAborted("invalid proxy port: " + portStr)
		}
		port = p
	}

	var username, password string
	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	proxied := &dial.Proxied{
		Kind:        kind,
		ProxyAddr:   host + ":" + strconv.Itoa(port),
		Username:    username,
		Password:    password,
		Inner:       dial.NewTCPDialer(nil),
		ProxyUseTLS: u.Scheme == "https",
	}
	return proxied, nil
}
