package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/filesmanager/internal/flagx"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. FILES_DATABASE_DSN.
const envPrefix = "FILES"

// legacyEnv maps pre-existing deployment variables onto config keys.
// They are consulted after the FILES_* names.
var legacyEnv = map[string]string{
	"folder_path": "FOLDER_PATH",
}

// loadFileAndEnv overlays values from the config file selected by -c/-config
// (JSON, YAML or TOML, chosen by extension) and from the environment.
//
// Every key already present in cfg is registered as a viper default, so
// AutomaticEnv can see it and keys missing from the file keep their value.
func loadFileAndEnv(cfg *Config, args []string) error {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key), legacy); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path := flagx.ConfigFileFlags(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// PORT predates the FILES_* names and only carries a port number. An
	// empty FILES_HTTP_ADDR counts as unset, as it does for viper.
	if port := os.Getenv("PORT"); port != "" && os.Getenv(envPrefix+"_HTTP_ADDR") == "" {
		cfg.HTTPAddr = ":" + port
	}

	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("http_addr", cfg.HTTPAddr)
	v.SetDefault("grpc_addr", cfg.GRPCAddr)
	v.SetDefault("database_dsn", cfg.DatabaseDSN)
	v.SetDefault("folder_path", cfg.FolderPath)
	v.SetDefault("session_ttl", cfg.SessionTTL)
	v.SetDefault("password_hash", cfg.PasswordHash)
	v.SetDefault("cache_backend", cfg.CacheBackend)
	v.SetDefault("cache_options", cfg.CacheOptions)
	v.SetDefault("blob_backend", cfg.BlobBackend)
	v.SetDefault("blob_cleanup_on_failure", cfg.BlobCleanupOnFailure)
	v.SetDefault("s3_root_user", cfg.S3RootUser)
	v.SetDefault("s3_root_password", cfg.S3RootPassword)
	v.SetDefault("s3_bucket", cfg.S3Bucket)
	v.SetDefault("s3_region", cfg.S3Region)
	v.SetDefault("s3_base_endpoint", cfg.S3BaseEndpoint)
	v.SetDefault("s3_key_prefix", cfg.S3KeyPrefix)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("health_check_interval", cfg.HealthCheckInterval)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
}
