package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed component.schema.json
var componentSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// descriptorSchema compiles the embedded component schema on first use.
func descriptorSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("component.schema.json", bytes.NewReader(componentSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("component.schema.json")
	})
	return schema, schemaErr
}

// ValidateDescriptor checks a component against the descriptor schema and
// reports every leaf violation in one error.
func ValidateDescriptor(c *Component) error {
	compiled, err := descriptorSchema()
	if err != nil {
		return fmt.Errorf("load descriptor schema: %w", err)
	}

	// Round-trip through JSON so the schema sees exactly what the store
	// would persist
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal component: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal component: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("component descriptor is invalid: %s", strings.Join(leafCauses(verr), "; "))
		}
		return fmt.Errorf("component descriptor is invalid: %w", err)
	}

	return nil
}

// ValidateDescriptorBytes checks a raw JSON document against the descriptor
// schema without decoding it into a Component first.
func ValidateDescriptorBytes(data []byte) error {
	compiled, err := descriptorSchema()
	if err != nil {
		return fmt.Errorf("load descriptor schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("component descriptor is not valid JSON: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("component descriptor is invalid: %s", strings.Join(leafCauses(verr), "; "))
		}
		return fmt.Errorf("component descriptor is invalid: %w", err)
	}

	return nil
}

// leafCauses flattens a validation error tree into its leaf messages.
func leafCauses(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, err.Message)}
	}

	var reasons []string
	for _, cause := range err.Causes {
		reasons = append(reasons, leafCauses(cause)...)
	}
	return reasons
}
