package adaptive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// modelFileVersion is bumped when the on-disk layout changes.
const modelFileVersion = 1

// ModelFile is the JSON layout for persisted model parameters. Weights,
// biases and scaling statistics round-trip exactly (encoding/json emits the
// shortest representation that parses back to the same float64), and the
// feature order is stored explicitly so a stale file cannot be applied to a
// reordered vector.
type ModelFile struct {
	Version      int      `json:"version"`
	FeatureOrder []string `json:"feature_order"`
	Model        Model    `json:"model"`
	Scaler       Scaler   `json:"scaler"`
}

// modelFileSchema validates the structure of a persisted model file.
var modelFileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "integer", "minimum": 1},
		"feature_order": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": NumFeatures,
			"maxItems": NumFeatures,
		},
		"model": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"weights": weightMatrixSchema(),
				"bias":    floatArraySchema(NumClasses),
			},
			"required": []any{"weights", "bias"},
		},
		"scaler": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mean": floatArraySchema(NumFeatures),
				"std":  floatArraySchema(NumFeatures),
			},
			"required": []any{"mean", "std"},
		},
	},
	"required":             []any{"version", "feature_order", "model", "scaler"},
	"additionalProperties": false,
}

func weightMatrixSchema() map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    floatArraySchema(NumFeatures),
		"minItems": NumClasses,
		"maxItems": NumClasses,
	}
}

func floatArraySchema(n int) map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "number"},
		"minItems": n,
		"maxItems": n,
	}
}

var (
	compiledModelSchema     *jsonschema.Schema
	compileModelSchemaOnce  sync.Once
	compileModelSchemaError error
)

func modelSchema() (*jsonschema.Schema, error) {
	compileModelSchemaOnce.Do(func() {
		raw, err := json.Marshal(modelFileSchema)
		if err != nil {
			compileModelSchemaError = err
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			compileModelSchemaError = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://model-file.json", parsed); err != nil {
			compileModelSchemaError = err
			return
		}
		compiledModelSchema, compileModelSchemaError = c.Compile("schema://model-file.json")
	})
	return compiledModelSchema, compileModelSchemaError
}

// SaveModel writes the model and scaler to path as JSON.
func SaveModel(path string, model Model, scaler Scaler) error {
	file := ModelFile{
		Version:      modelFileVersion,
		FeatureOrder: featureNames[:],
		Model:        model,
		Scaler:       scaler,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}

// LoadModel reads and validates a persisted model file.
func LoadModel(path string) (Model, Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, Scaler{}, fmt.Errorf("read model file: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Model{}, Scaler{}, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
	}

	schema, err := modelSchema()
	if err != nil {
		return Model{}, Scaler{}, fmt.Errorf("compile model schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Model{}, Scaler{}, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
	}

	var file ModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Model{}, Scaler{}, fmt.Errorf("%w: %v", ErrInvalidModelFile, err)
	}

	if file.Version != modelFileVersion {
		return Model{}, Scaler{}, fmt.Errorf("%w: version %d, want %d", ErrInvalidModelFile, file.Version, modelFileVersion)
	}
	for i, name := range file.FeatureOrder {
		if name != featureNames[i] {
			return Model{}, Scaler{}, fmt.Errorf("%w: feature %d is %q, want %q", ErrInvalidModelFile, i, name, featureNames[i])
		}
	}

	return file.Model, file.Scaler, nil
}
