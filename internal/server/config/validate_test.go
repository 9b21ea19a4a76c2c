package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"missing dsn", func(c *Config) { c.DatabaseDSN = "" }, "DatabaseDSN"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "SessionTTL"},
		{"unknown hash", func(c *Config) { c.PasswordHash = "md5" }, "PasswordHash"},
		{"unknown blob backend", func(c *Config) { c.BlobBackend = "gcs" }, "BlobBackend"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"filesystem needs folder", func(c *Config) { c.FolderPath = "" }, "folder_path"},
		{"s3 needs bucket", func(c *Config) { c.BlobBackend = "s3"; c.S3Bucket = "" }, "s3_bucket"},
		{"s3 needs region", func(c *Config) { c.BlobBackend = "s3"; c.S3Region = "" }, "s3_region"},
		{"s3 does not need folder", func(c *Config) { c.BlobBackend = "s3"; c.FolderPath = "" }, ""},
		{"upper case level accepted", func(c *Config) { c.LogLevel = "WARN" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)

			err := Validate(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
