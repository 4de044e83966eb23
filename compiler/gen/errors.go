package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a model the generator cannot map.
	ErrInvalidSchema = errors.New("enki: invalid schema")
	// ErrInvalidAssociation indicates an association that cannot be mapped.
	ErrInvalidAssociation = errors.New("enki: invalid association")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("enki: missing configuration")
	// ErrUnsupportedDialect indicates a dialect without the requested support.
	ErrUnsupportedDialect = errors.New("enki: unsupported dialect")
	// ErrGenerationFailed indicates a generation failure.
	ErrGenerationFailed = errors.New("enki: generation failed")
)

// SchemaError represents a classifier or attribute that cannot be mapped.
type SchemaError struct {
	Type    string // Qualified classifier name
	Feature string // Attribute name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("enki: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Feature != "" {
		b.WriteString(" feature ")
		b.WriteString(e.Feature)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, feature, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Feature: feature,
		Message: message,
		Cause:   cause,
	}
}

// AssociationError represents an association that cannot be mapped.
type AssociationError struct {
	Association string
	From        string
	To          string
	Message     string
}

// Error implements the error interface.
func (e *AssociationError) Error() string {
	var b strings.Builder
	b.WriteString("enki: association error")
	if e.Association != "" {
		b.WriteString(" on ")
		b.WriteString(e.Association)
	}
	if e.From != "" && e.To != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.To)
	} else if e.From != "" {
		b.WriteString(" from ")
		b.WriteString(e.From)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for AssociationError.
func (e *AssociationError) Is(target error) bool {
	return target == ErrInvalidAssociation
}

// NewAssociationError creates a new AssociationError.
func NewAssociationError(assoc, from, to, message string) *AssociationError {
	return &AssociationError{
		Association: assoc,
		From:        from,
		To:          to,
		Message:     message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("enki: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("enki: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// DialectError represents a dialect lacking a required capability.
type DialectError struct {
	Dialect string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DialectError) Error() string {
	var b strings.Builder
	b.WriteString("enki: dialect error")
	if e.Dialect != "" {
		b.WriteString(" for ")
		b.WriteString(e.Dialect)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DialectError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DialectError.
func (e *DialectError) Is(target error) bool {
	return target == ErrUnsupportedDialect
}

// NewDialectError creates a new DialectError.
func NewDialectError(dialect, message string, cause error) *DialectError {
	return &DialectError{
		Dialect: dialect,
		Message: message,
		Cause:   cause,
	}
}

// GenerationError represents a failed generation run.
type GenerationError struct {
	Phase   string // Phase in which the run failed
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("enki: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsAssociationError reports whether the error is an AssociationError.
func IsAssociationError(err error) bool {
	var assocErr *AssociationError
	return errors.As(err, &assocErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsDialectError reports whether the error is a DialectError.
func IsDialectError(err error) bool {
	var dialectErr *DialectError
	return errors.As(err, &dialectErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
