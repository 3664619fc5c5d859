package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DataPath)
	assert.NotEmpty(t, cfg.TransactionsPath)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "materials.json", cfg.DataPath)
	assert.Equal(t, "demo_data.json", cfg.TransactionsPath)
	assert.Equal(t, "local", cfg.PhotoBackend)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, "Demo Vendor", cfg.VendorName)
	assert.Equal(t, "Mumbai", cfg.VendorLocation)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DATA_PATH", "/custom/materials.json")
	t.Setenv("PHOTO_BACKEND", "s3")
	t.Setenv("PHOTO_S3_BUCKET", "eco-photos")
	t.Setenv("PHOTO_S3_PATH_STYLE", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("VENDOR_NAME", "Green Farms")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/materials.json", cfg.DataPath)
	assert.Equal(t, "s3", cfg.PhotoBackend)
	assert.Equal(t, "eco-photos", cfg.S3Bucket)
	assert.True(t, cfg.S3PathStyle)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "Green Farms", cfg.VendorName)
}

func TestBindFlagOverridesEnv(t *testing.T) {
	t.Setenv("DATA_PATH", "/env/materials.json")
	t.Setenv("LISTEN_ADDR", ":9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data", "materials.json", "")
	flags.String("listen", ":8080", "")

	v := NewViper()
	require.NoError(t, BindFlag(v, KeyDataPath, flags.Lookup("data")))
	require.NoError(t, BindFlag(v, KeyListenAddr, flags.Lookup("listen")))
	require.NoError(t, flags.Parse([]string{"--data", "/flag/materials.json"}))

	cfg := FromViper(v)
	assert.Equal(t, "/flag/materials.json", cfg.DataPath)
	assert.Equal(t, ":9000", cfg.ListenAddr, "unset flag must not shadow the environment")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	v := NewViper()
	used, err := ReadFile(v)
	require.NoError(t, err)
	assert.Empty(t, used)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ecoexchange.yaml"),
		[]byte("vendor_name: File Vendor\nphoto_s3_bucket: from-file\n"), 0o644))
	t.Setenv("PHOTO_S3_BUCKET", "from-env")

	v = NewViper()
	used, err = ReadFile(v)
	require.NoError(t, err)
	assert.Equal(t, "ecoexchange.yaml", filepath.Base(used))

	cfg := FromViper(v)
	assert.Equal(t, "File Vendor", cfg.VendorName)
	assert.Equal(t, "from-env", cfg.S3Bucket)
}
