// Package tlsprovider builds *tls.Config values for the wire engine's TLS
// dial strategy: either from PEM files on disk (a CA bundle and an optional
// client certificate and key), or from an explicit key pair and certificate
// pool. PKCS#12 or password-protected trust stores are not read.
package tlsprovider

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/go-httpcore/httpcore/pkg/errors"
	"github.com/go-httpcore/httpcore/pkg/tlsconfig"
)

// Store builds a *tls.Config for a connection to host.
type Store interface {
	Build(host string) (*tls.Config, error)
}

// FileStore loads a PEM trust store (optionally client-authenticated) from
// disk, reloading it on every Build call so certificate rotation on disk
// takes effect without restarting the client.
type FileStore struct {
	CAPath     string
	CertPath   string
	KeyPath    string
	Profile    tlsconfig.VersionProfile
	ServerName string
}

// NewFileStore builds a FileStore trusting the CA bundle at caPath, with
// tlsconfig.ProfileSecure as its version profile.
func NewFileStore(caPath string) *FileStore {
	return &FileStore{CAPath: caPath, Profile: tlsconfig.ProfileSecure}
}

func (s *FileStore) Build(host string) (*tls.Config, error) {
	cfg := &tls.Config{ServerName: host}
	if s.ServerName != "" {
		cfg.ServerName = s.ServerName
	}
	tlsconfig.ApplyVersionProfile(cfg, s.Profile)
	tlsconfig.ApplyCipherSuites(cfg, s.Profile.Min)

	if s.CAPath != "" {
		pemBytes, err := os.ReadFile(s.CAPath)
		if err != nil {
			return nil, errors.IO("read CA bundle", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pemBytes) {
			return nil, errors.New(errors.KindRequestAborted, "tls", "no certificates found in CA bundle")
		}
		cfg.RootCAs = pool
	}

	if s.CertPath != "" && s.KeyPath != "" {
		cert, err := tls.LoadX509KeyPair(s.CertPath, s.KeyPath)
		if err != nil {
			return nil, errors.Wrap(errors.KindRequestAborted, "tls", "load client certificate", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return cfg, nil
}

// StaticStore wraps an explicit key pair and/or certificate pool built by
// the caller, with no disk I/O per Build call.
type StaticStore struct {
	RootCAs      *x509.CertPool
	Certificates []tls.Certificate
	Profile      tlsconfig.VersionProfile
}

// NewStaticStore builds a StaticStore around an already-parsed key pair.
func NewStaticStore(pool *x509.CertPool, cert tls.Certificate) *StaticStore {
	return &StaticStore{RootCAs: pool, Certificates: []tls.Certificate{cert}, Profile: tlsconfig.ProfileSecure}
}

func (s *StaticStore) Build(host string) (*tls.Config, error) {
	cfg := &tls.Config{ServerName: host, RootCAs: s.RootCAs, Certificates: s.Certificates}
	profile := s.Profile
	if profile.Min == 0 {
		profile = tlsconfig.ProfileSecure
	}
	tlsconfig.ApplyVersionProfile(cfg, profile)
	tlsconfig.ApplyCipherSuites(cfg, profile.Min)
	return cfg, nil
}

// DefaultStore trusts the platform certificate pool with ProfileSecure,
// used when the caller configures no explicit TLS provider.
type DefaultStore struct {
	Profile tlsconfig.VersionProfile
}

func (s DefaultStore) Build(host string) (*tls.Config, error) {
	profile := s.Profile
	if profile.Min == 0 {
		profile = tlsconfig.ProfileSecure
	}
	cfg := &tls.Config{ServerName: host}
	tlsconfig.ApplyVersionProfile(cfg, profile)
	tlsconfig.ApplyCipherSuites(cfg, profile.Min)
	return cfg, nil
}

// ParsePEMCertificates is a convenience used by tests to build an
// x509.CertPool from raw PEM bytes without touching disk.
func ParsePEMCertificates(pemBytes []byte) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	for {
		var block *pem.Block
		block, pemBytes = pem.Decode(pemBytes)
		if block == nil {
			break
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, errors.Wrap(errors.KindInvalidSyntax, "tls", "parse certificate", err)
		}
		pool.AddCert(cert)
	}
	return pool, nil
}
