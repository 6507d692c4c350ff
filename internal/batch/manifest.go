package batch

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/slab-tools/slab/internal/vasp"
)

// manifestSchemaJSON constrains batch manifest files: a JSON object with a
// non-empty outcar_paths array of non-empty strings and an optional
// fail_fast flag.
const manifestSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["outcar_paths"],
  "additionalProperties": false,
  "properties": {
    "outcar_paths": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "fail_fast": {"type": "boolean"}
  }
}`

var manifestSchema = jsonschema.MustCompileString("manifest.schema.json", manifestSchemaJSON)

// Manifest is a batch request loaded from a JSON file.
type Manifest struct {
	OutcarPaths []string `json:"outcar_paths"`
	FailFast    bool     `json:"fail_fast"`
}

// LoadManifest reads and validates a batch manifest file against the
// embedded schema before decoding it.
func LoadManifest(path string) (*Manifest, error) {
	resolved, err := vasp.ValidateFilePath(path, "manifest_path", "Manifest")
	if err != nil {
		return nil, err
	}

	raw, err := vasp.ReadFile(resolved)
	if err != nil {
		return nil, err
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, vasp.NewValidationError(vasp.CodeValidation, "manifest is not valid JSON: %v", err).
			WithDetails(map[string]string{"path": resolved})
	}

	if err := manifestSchema.Validate(doc); err != nil {
		msg := err.Error()
		if idx := strings.IndexByte(msg, '\n'); idx > 0 {
			msg = msg[:idx]
		}
		return nil, vasp.NewValidationError(vasp.CodeValidation, "manifest does not match schema: %s", msg).
			WithDetails(map[string]string{"path": resolved})
	}

	var manifest Manifest
	if err := json.Unmarshal([]byte(raw), &manifest); err != nil {
		return nil, vasp.NewValidationError(vasp.CodeValidation, "manifest could not be decoded: %v", err)
	}

	return &manifest, nil
}
