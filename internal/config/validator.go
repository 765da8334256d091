package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	kiterrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return kiterrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.Store.Driver != "memory" && cfg.Store.Path == "" {
		return kiterrors.NewValidationError("store.path", fmt.Sprintf("required for the %s driver", cfg.Store.Driver), nil)
	}

	seen := make(map[string]int, len(cfg.Themes))
	for i, theme := range cfg.Themes {
		key := theme.Path + "\x00" + theme.Name
		if first, ok := seen[key]; ok {
			return kiterrors.NewValidationError(fmt.Sprintf("themes[%d]", i), fmt.Sprintf("duplicates themes[%d]", first), nil)
		}
		seen[key] = i
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return kiterrors.NewValidationError(field, msg, err)
	}

	return kiterrors.NewValidationError("config", err.Error(), err)
}

// fieldName turns "Config.Store.Driver" into "store.driver".
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ".")
}
