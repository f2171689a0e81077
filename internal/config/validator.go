package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/buildcond/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// schemaDefinition is the definition the config is unified with.
const schemaDefinition = "#BuildConfig"

// ValidationError represents a single configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap marks every ValidationErrors as an ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	def := compiled.LookupPath(cue.ParsePath(schemaDefinition))
	if !def.Exists() {
		return nil, fmt.Errorf("schema is missing %s", schemaDefinition)
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate unifies cfg with the schema and reports every violation.
func (v *Validator) Validate(cfg *BuildConfig) error {
	val := v.ctx.Encode(cfg)
	if val.Err() != nil {
		return fmt.Errorf("encoding config: %w", val.Err())
	}

	unified := v.schema.Unify(val)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		errs = append(errs, ValidationError{
			Field:   fieldPath(e.Path()),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(errs) == 0 {
		errs = append(errs, ValidationError{Field: "config", Message: err.Error()})
	}
	return errs
}

// ValidateFile loads the configuration file at path and validates it.
func (v *Validator) ValidateFile(path string) (*BuildConfig, error) {
	cfg, err := NewLoader().LoadWithDefaults(path)
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	if err := v.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fieldPath(path []string) string {
	// Drop the leading definition selector.
	if len(path) > 0 && path[0] == schemaDefinition {
		path = path[1:]
	}
	if len(path) == 0 {
		return "config"
	}
	return strings.Join(path, ".")
}
