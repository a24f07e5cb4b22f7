package nexus

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigError represents configuration loading failures
type ConfigError struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeInvalidType  = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
)

// Validator handles configuration validation
type Validator interface {
	Validate(cfg interface{}) error
}

// LoaderOptions contains configuration for the loader
type LoaderOptions struct {
	FileName        string
	DefaultFileName string
	Validator       Validator
	Overrides       []interface{}
}

// Loader reads a config struct from a file (optional) and the environment,
// applies overrides and validates the result.
type Loader struct {
	options LoaderOptions
}

// LoaderOption is a functional option for configuring the loader
type LoaderOption func(*LoaderOptions)

// WithFileName sets a specific configuration file name; it must exist.
func WithFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileName = fileName
	}
}

// WithDefaultFileName sets a file read only when present.
func WithDefaultFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.DefaultFileName = fileName
	}
}

// WithValidator replaces the struct tag validator.
func WithValidator(v Validator) LoaderOption {
	return func(o *LoaderOptions) {
		o.Validator = v
	}
}

// WithOverrides merges the non-zero fields of each value (same type as the
// target) over the loaded configuration, in order.
func WithOverrides(overrides ...interface{}) LoaderOption {
	return func(o *LoaderOptions) {
		o.Overrides = append(o.Overrides, overrides...)
	}
}

// NewLoader creates a new configuration loader with options
func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		Validator: &DefaultValidator{},
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Loader{options: options}
}

// Load fills cfg. Precedence: overrides, environment, file, env-default tags.
func (l *Loader) Load(cfg interface{}) error {
	if err := l.validateInputType(cfg); err != nil {
		return err
	}

	if fileName := l.resolveFileName(); fileName != "" {
		if err := cleanenv.ReadConfig(fileName, cfg); err != nil {
			return &ConfigError{
				Code:    ErrCodeFileNotFound,
				Message: fmt.Sprintf("failed to read configuration file: %s", fileName),
				Cause:   err,
			}
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return &ConfigError{
			Code:    ErrCodeEnvironment,
			Message: "failed to read environment variables",
			Cause:   err,
		}
	}

	for _, override := range l.options.Overrides {
		if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
			return &ConfigError{
				Code:    ErrCodeMerge,
				Message: "failed to merge configuration overrides",
				Cause:   err,
			}
		}
	}

	if err := l.options.Validator.Validate(cfg); err != nil {
		cfgErr := &ConfigError{
			Code:    ErrCodeValidation,
			Message: "configuration validation failed",
			Cause:   err,
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			cfgErr.Field = fieldErrs[0].Namespace()
		}
		return cfgErr
	}

	return nil
}

func (l *Loader) validateInputType(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}
	return nil
}

func (l *Loader) resolveFileName() string {
	if l.options.FileName != "" {
		return l.options.FileName
	}
	if l.options.DefaultFileName == "" {
		return ""
	}
	if _, err := os.Stat(l.options.DefaultFileName); err == nil {
		return l.options.DefaultFileName
	}
	return ""
}

// DefaultValidator implements validation using go-playground/validator
type DefaultValidator struct {
	validator *validator.Validate
}

func (v *DefaultValidator) Validate(cfg interface{}) error {
	if v.validator == nil {
		v.validator = validator.New(validator.WithRequiredStructEnabled())
	}
	return v.validator.Struct(cfg)
}
