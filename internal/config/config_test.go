package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/baitlens/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := &Config{
		Server:     "http://analysis.internal:9000",
		Embeddings: true,
		Timeout:    "45s",
		LogFile:    "/tmp/baitlens.log",
	}

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("embeddings: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, client.DefaultServer, cfg.Server)
	assert.True(t, cfg.Embeddings)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [unclosed\n"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	badTimeout := filepath.Join(dir, "timeout.yaml")
	require.NoError(t, os.WriteFile(badTimeout, []byte("timeout: soon\n"), 0644))
	_, err = Load(badTimeout)
	assert.ErrorContains(t, err, "timeout")
}

func TestLoadDirMissingFile(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "30s", want: 30 * time.Second},
		{in: "1m30s", want: 90 * time.Second},
		{in: "-5s", wantErr: true},
		{in: "later", wantErr: true},
	}

	for _, tt := range tests {
		d, err := (&Config{Timeout: tt.in}).TimeoutDuration()
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, d)
	}
}

func TestLoadEnv(t *testing.T) {
	loaded, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAITLENS_TEST_SERVER=http://from-env:1234\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BAITLENS_TEST_SERVER") })

	loaded, err = LoadEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "http://from-env:1234", os.Getenv("BAITLENS_TEST_SERVER"))
}
