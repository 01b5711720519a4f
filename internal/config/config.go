package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Minio  MinioConfig
	Upload UploadConfig
	Log    LogConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

type UploadConfig struct {
	BasePrefix string
	Workers    int
}

type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset. It never fails; callers receive a fresh
// Config and pass it into constructors explicitly.
func Load() *Config {
	v := viper.New()

	// Set default values
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET_NAME", "data")
	v.SetDefault("MINIO_SECURE", false)
	v.SetDefault("BASE_UPLOAD_PATH", "")
	v.SetDefault("UPLOAD_WORKERS", 4)
	v.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	v.AutomaticEnv()

	workers := v.GetInt("UPLOAD_WORKERS")
	if workers < 1 {
		workers = 1
	}

	return &Config{
		Minio: MinioConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET_NAME"),
			Secure:    v.GetBool("MINIO_SECURE"),
		},
		Upload: UploadConfig{
			BasePrefix: v.GetString("BASE_UPLOAD_PATH"),
			Workers:    workers,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
