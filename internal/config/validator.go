package config

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	elemerrors "github.com/alexisbeaulieu97/elemgen/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	elementTagPattern = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)
	fileExtPattern    = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)
	suffixPattern     = regexp.MustCompile(`^\.[a-z0-9_-]+$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("element_tag", func(fl validator.FieldLevel) bool {
			return elementTagPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("file_ext", func(fl validator.FieldLevel) bool {
			return fileExtPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("suffix", func(fl validator.FieldLevel) bool {
			return suffixPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			if name == "" || name == "." || name == ".." {
				return false
			}
			return !strings.ContainsAny(name, `/\`)
		})

		_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
			_, err := filepath.Match(fl.Field().String(), "")
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return elemerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

// ValidateTagName reports whether name is an acceptable custom element tag.
func ValidateTagName(name string) error {
	if err := validatorInstance().Var(name, "required,element_tag"); err != nil {
		return elemerrors.NewValidationError("tag", "invalid tag name "+quote(name)+": must be lowercase and start with a letter", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}
