package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMissingParent indicates an extends clause naming an undefined type.
	ErrMissingParent = errors.New("schemagen: missing parent type")
	// ErrCyclicInheritance indicates an extends chain that loops back on itself.
	ErrCyclicInheritance = errors.New("schemagen: cyclic inheritance")
	// ErrInvalidDefinition indicates a definition that is neither a record nor an enum.
	ErrInvalidDefinition = errors.New("schemagen: invalid definition")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("schemagen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("schemagen: code generation failed")
	// ErrValidationFailed indicates generated output that failed validation.
	ErrValidationFailed = errors.New("schemagen: validation failed")
)

// MissingParentError is returned when a type extends a type that is not
// part of the schema model.
type MissingParentError struct {
	Type   string // Type declaring the extends clause
	Parent string // Undefined parent name
}

// Error implements the error interface.
func (e *MissingParentError) Error() string {
	return fmt.Sprintf("schemagen: broken inheritance tree: %s extends %s, which does not exist", e.Type, e.Parent)
}

// Is reports whether the target matches the sentinel error for MissingParentError.
func (e *MissingParentError) Is(target error) bool {
	return target == ErrMissingParent
}

// CycleError is returned when an extends chain revisits a type that is
// still being resolved.
type CycleError struct {
	// Chain lists the types in resolution order, starting and ending
	// with the same name.
	Chain []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return "schemagen: cyclic inheritance: " + strings.Join(e.Chain, " -> ")
}

// Is reports whether the target matches the sentinel error for CycleError.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicInheritance
}

// DefinitionError represents a definition that violates a shape rule.
type DefinitionError struct {
	Type    string // Type name
	Field   string // Field name (if applicable)
	Message string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: invalid definition")
	if e.Type != "" {
		b.WriteString(" of type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for DefinitionError.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// NewDefinitionError creates a new DefinitionError.
func NewDefinitionError(typeName, fieldName, message string) *DefinitionError {
	return &DefinitionError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
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
		return fmt.Sprintf("schemagen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("schemagen: config error for %q: %s", e.Option, e.Message)
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

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "registry", "render", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: generation error")
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

// ValidationError represents generated output rejected by a validator.
type ValidationError struct {
	Target  string // "sdl", "go", etc.
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("schemagen: validation error")
	if e.Target != "" {
		b.WriteString(" in ")
		b.WriteString(e.Target)
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
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// IsMissingParentError reports whether the error is a MissingParentError.
func IsMissingParentError(err error) bool {
	var parentErr *MissingParentError
	return errors.As(err, &parentErr)
}

// IsCycleError reports whether the error is a CycleError.
func IsCycleError(err error) bool {
	var cycleErr *CycleError
	return errors.As(err, &cycleErr)
}

// IsDefinitionError reports whether the error is a DefinitionError.
func IsDefinitionError(err error) bool {
	var defErr *DefinitionError
	return errors.As(err, &defErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
