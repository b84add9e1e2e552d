// Package validator checks the registry document against a CUE schema
// before it is written. A merge bug that drops a field or emits the wrong
// type should crash the run with a clear message, not silently corrupt
// the persisted data.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed registry_schema.cue
var schemaFS embed.FS

// Validator validates registry documents against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a Validator with the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("registry_schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{ctx: ctx, schema: schema}, nil
}

// ValidateDocument checks that a registry document conforms to the schema.
// Returns nil if valid, or a detailed error explaining what failed.
func (v *Validator) ValidateDocument(doc interface{}) error {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document to JSON: %w", err)
	}
	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates JSON bytes directly against the schema.
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling JSON as CUE: %w", dataValue.Err())
	}

	docDef := v.schema.LookupPath(cue.ParsePath("#Document"))
	if docDef.Err() != nil {
		return fmt.Errorf("looking up #Document definition: %w", docDef.Err())
	}

	unified := docDef.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
