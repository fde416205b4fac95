package tlsprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-httpcore/httpcore/pkg/tlsconfig"
)

func TestDefaultStoreAppliesSecureProfile(t *testing.T) {
	cfg, err := DefaultStore{}.Build("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", cfg.ServerName)
	assert.Equal(t, uint16(tlsconfig.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, uint16(tlsconfig.VersionTLS13), cfg.MaxVersion)
}

func TestDefaultStoreHonorsExplicitProfile(t *testing.T) {
	cfg, err := DefaultStore{Profile: tlsconfig.ProfileModern}.Build("example.com")
	require.NoError(t, err)
	assert.Equal(t, uint16(tlsconfig.VersionTLS13), cfg.MinVersion)
	assert.Nil(t, cfg.CipherSuites)
}

func TestFileStoreRejectsMissingCAFile(t *testing.T) {
	s := NewFileStore("/nonexistent/ca.pem")
	_, err := s.Build("example.com")
	assert.Error(t, err)
}

func TestFileStoreServerNameOverride(t *testing.T) {
	s := &FileStore{Profile: tlsconfig.ProfileSecure, ServerName: "override.example.com"}
	cfg, err := s.Build("example.com")
	require.NoError(t, err)
	assert.Equal(t, "override.example.com", cfg.ServerName)
}

func TestStaticStoreDefaultsToSecureProfile(t *testing.T) {
	s := &StaticStore{}
	cfg, err := s.Build("example.com")
	require.NoError(t, err)
	assert.Equal(t, uint16(tlsconfig.VersionTLS12), cfg.MinVersion)
}

func TestParsePEMCertificatesIgnoresNonPEMInput(t *testing.T) {
	pool, err := ParsePEMCertificates([]byte("not a pem block"))
	require.NoError(t, err)
	assert.NotNil(t, pool)
}
