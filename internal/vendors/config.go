package vendors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ThiagoElux01/Comex-app/internal/common"
)

// Override files let operations register new suppliers without a rebuild.
// Entries are appended to the registry, never inserted, so the priority of
// the built-in names is preserved.

const overrideSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "externos": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "code": {"type": "string", "minLength": 1}
        },
        "required": ["name", "code"],
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var compiledOverrideSchema = jsonschema.MustCompileString("vendors-override.json", overrideSchema)

// Overrides is the parsed shape of a vendor override file.
type Overrides struct {
	Externos []Vendor `json:"externos"`
}

// LoadOverrides reads and validates an override file. A malformed file is a
// configuration error and must abort startup rather than silently change
// which suppliers resolve.
func LoadOverrides(path string) (*Overrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewAppError(common.CodeInvalidInput,
			fmt.Sprintf("reading vendor overrides %s", path), err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewAppError(common.CodeValidation,
			fmt.Sprintf("vendor overrides %s is not valid JSON", path), err)
	}
	if err := compiledOverrideSchema.Validate(doc); err != nil {
		return nil, common.NewAppError(common.CodeValidation,
			fmt.Sprintf("vendor overrides %s failed schema validation", path), err)
	}

	var out Overrides
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, common.NewAppError(common.CodeValidation,
			fmt.Sprintf("decoding vendor overrides %s", path), err)
	}
	for i := range out.Externos {
		out.Externos[i].Name = strings.TrimSpace(out.Externos[i].Name)
		out.Externos[i].Code = strings.TrimSpace(out.Externos[i].Code)
	}
	return &out, nil
}

// Apply appends the override vendors to the registry.
func (o *Overrides) Apply(reg *Registry) {
	if o == nil {
		return
	}
	for _, v := range o.Externos {
		reg.Append(v)
	}
}
