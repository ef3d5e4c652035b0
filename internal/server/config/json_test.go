package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "www.example:9000",
		"database_dsn":                   "postgres://example/shareling",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "30m",
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "endpoint",
	})

	t.Run("no sources, config untouched", func(t *testing.T) {
		os.Args = []string{"cmd"}

		cfg := &Config{EndpointAddrHTTP: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.EndpointAddrHTTP)
	})

	t.Run("flag -c sets all values", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://example/shareling", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "endpoint", cfg.S3BaseEndpoint)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", filepath.Join(dir, "missing.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("invalid json panics", func(t *testing.T) {
		badPath := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(badPath, []byte("{not json"), 0o600))
		os.Args = []string{"cmd", "-c", badPath}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
