package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags first and then the rules that depend on the
// selected backends.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	switch cfg.BlobBackend {
	case "filesystem":
		if cfg.FolderPath == "" {
			return fmt.Errorf("folder_path: required when blob_backend is filesystem")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			return fmt.Errorf("s3_bucket: required when blob_backend is s3")
		}
		if cfg.S3Region == "" {
			return fmt.Errorf("s3_region: required when blob_backend is s3")
		}
	}

	return nil
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
