package bundle

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed prefab.schema.json
var prefabSchemaSource string

const prefabSchemaURL = "https://hudcompass.local/schemas/prefab.schema.json"

var (
	prefabSchemaOnce sync.Once
	prefabSchema     *jsonschema.Schema
	prefabSchemaErr  error
)

func compiledPrefabSchema() (*jsonschema.Schema, error) {
	prefabSchemaOnce.Do(func() {
		prefabSchema, prefabSchemaErr = jsonschema.CompileString(prefabSchemaURL, prefabSchemaSource)
	})
	return prefabSchema, prefabSchemaErr
}

// ValidatePrefab checks a raw prefab YAML document against the prefab schema.
func ValidatePrefab(data []byte) error {
	schema, err := compiledPrefabSchema()
	if err != nil {
		return fmt.Errorf("bundle: compile prefab schema: %w", err)
	}
	doc, err := yamlToJSONValue(data)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("bundle: prefab schema: %w", err)
	}
	return nil
}

// yamlToJSONValue decodes YAML into the plain JSON value shapes the validator
// expects (float64 numbers, map[string]any objects).
func yamlToJSONValue(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bundle: decode yaml: %w", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("bundle: re-encode yaml as json: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("bundle: decode json: %w", err)
	}
	return out, nil
}
