package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// DragSchema defines the JSON schema for carousel drag events.
var DragSchema = `{
	"type": "object",
	"properties": {
		"phase": {"type": "string", "enum": ["start", "move", "end", "leave"]},
		"x": {"type": "integer"},
		"scrollLeft": {"type": "integer", "minimum": 0}
	},
	"required": ["phase"],
	"additionalProperties": false
}`

var dragSchema = gojsonschema.NewStringLoader(DragSchema)

// DragEvent is one pointer event of a drag-to-scroll gesture.
type DragEvent struct {
	Phase      string `json:"phase"`
	X          int    `json:"x"`
	ScrollLeft int    `json:"scrollLeft"`
}

// ValidateDragEvent validates a JSON body against the drag schema.
func ValidateDragEvent(jsonData []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(dragSchema, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate JSON schema: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("JSON validation failed: %s", strings.Join(errorMessages, "; "))
	}

	return nil
}

// ParseDragEvent validates and decodes a drag event body.
func ParseDragEvent(jsonData []byte) (*DragEvent, error) {
	if err := ValidateDragEvent(jsonData); err != nil {
		return nil, err
	}

	var ev DragEvent
	if err := json.Unmarshal(jsonData, &ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return &ev, nil
}
