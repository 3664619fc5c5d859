package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys are the environment variable names; flags bound with BindFlag
// override them.
const (
	KeyListenAddr       = "LISTEN_ADDR"
	KeyDataPath         = "DATA_PATH"
	KeyTransactionsPath = "TRANSACTIONS_PATH"
	KeyPhotoBackend     = "PHOTO_BACKEND"
	KeyPhotoPath        = "PHOTO_LOCAL_PATH"
	KeyS3Bucket         = "PHOTO_S3_BUCKET"
	KeyS3Region         = "PHOTO_S3_REGION"
	KeyS3Endpoint       = "PHOTO_S3_ENDPOINT"
	KeyS3PathStyle      = "PHOTO_S3_PATH_STYLE"
	KeyVendorName       = "VENDOR_NAME"
	KeyVendorLocation   = "VENDOR_LOCATION"
	KeyMetricsEnabled   = "METRICS_ENABLED"
	KeyLogLevel         = "LOG_LEVEL"
	KeyLogFile          = "LOG_FILE"
)

type Config struct {
	ListenAddr       string
	DataPath         string
	TransactionsPath string
	PhotoBackend     string
	PhotoPath        string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3PathStyle      bool
	VendorName       string
	VendorLocation   string
	MetricsEnabled   bool
	LogLevel         string
	LogFile          string
}

// NewViper returns a viper instance reading the environment, with defaults
// for every key.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyListenAddr, ":8080")
	v.SetDefault(KeyDataPath, "materials.json")
	v.SetDefault(KeyTransactionsPath, "demo_data.json")
	v.SetDefault(KeyPhotoBackend, "local")
	v.SetDefault(KeyPhotoPath, "photos")
	v.SetDefault(KeyS3Bucket, "")
	v.SetDefault(KeyS3Region, "us-east-1")
	v.SetDefault(KeyS3Endpoint, "")
	v.SetDefault(KeyS3PathStyle, false)
	v.SetDefault(KeyVendorName, "Demo Vendor")
	v.SetDefault(KeyVendorLocation, "Mumbai")
	v.SetDefault(KeyMetricsEnabled, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.AutomaticEnv()
	return v
}

// BindFlag makes a command-line flag override the environment for key. Only
// flags the user actually set take precedence.
func BindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	return v.BindPFlag(key, flag)
}

// ReadFile merges an optional ecoexchange.{yaml,json,toml} from the working
// directory, $HOME/.ecoexchange or /etc/ecoexchange. It returns the file
// used, or "" when none exists.
func ReadFile(v *viper.Viper) (string, error) {
	v.SetConfigName("ecoexchange")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.ecoexchange")
	v.AddConfigPath("/etc/ecoexchange")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load reads the configuration from the environment.
func Load() *Config {
	return FromViper(NewViper())
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		ListenAddr:       v.GetString(KeyListenAddr),
		DataPath:         v.GetString(KeyDataPath),
		TransactionsPath: v.GetString(KeyTransactionsPath),
		PhotoBackend:     v.GetString(KeyPhotoBackend),
		PhotoPath:        v.GetString(KeyPhotoPath),
		S3Bucket:         v.GetString(KeyS3Bucket),
		S3Region:         v.GetString(KeyS3Region),
		S3Endpoint:       v.GetString(KeyS3Endpoint),
		S3PathStyle:      v.GetBool(KeyS3PathStyle),
		VendorName:       v.GetString(KeyVendorName),
		VendorLocation:   v.GetString(KeyVendorLocation),
		MetricsEnabled:   v.GetBool(KeyMetricsEnabled),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFile:          v.GetString(KeyLogFile),
	}
}
