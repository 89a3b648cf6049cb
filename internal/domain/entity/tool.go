package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName        = errors.New("tool name cannot be empty")
	ErrEmptyDescription = errors.New("tool description cannot be empty")
	ErrEmptySchema      = errors.New("input schema cannot be empty")
	ErrNilSchema        = errors.New("input schema cannot be nil")
	ErrInvalidInput     = errors.New("invalid input JSON")
	ErrNilInput         = errors.New("input cannot be nil")
	ErrEmptyInput       = errors.New("input cannot be empty")
)

// Tool describes one operation the model may invoke: its name, what it does,
// and the schema its arguments must satisfy. Descriptors are built once at
// startup and shared read-only for the life of the process.
type Tool struct {
	Name           string                 `json:"name"`                      // Function name exposed to the model
	Description    string                 `json:"description"`               // What the tool does, phrased for the model
	InputSchema    map[string]interface{} `json:"input_schema,omitempty"`    // JSON schema properties for the arguments
	RequiredFields []string               `json:"required_fields,omitempty"` // Argument names that must be present
}

// NewTool creates a tool descriptor with the given name and description.
func NewTool(name, description string) (*Tool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	return &Tool{
		Name:        name,
		Description: description,
	}, nil
}

// Validate checks that the descriptor has a usable name and description.
func (t *Tool) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// AddInputSchema sets the input schema and required fields for the tool.
// The required fields slice is copied defensively.
func (t *Tool) AddInputSchema(schema map[string]interface{}, required []string) error {
	if schema == nil {
		return ErrNilSchema
	}
	if len(schema) == 0 {
		return ErrEmptySchema
	}

	t.InputSchema = schema
	if required != nil {
		t.RequiredFields = make([]string, len(required))
		copy(t.RequiredFields, required)
	}
	return nil
}

// HasRequired checks if an argument name is in the required fields list.
func (t *Tool) HasRequired(fieldName string) bool {
	if fieldName == "" {
		return false
	}
	for _, req := range t.RequiredFields {
		if req == fieldName {
			return true
		}
	}
	return false
}

// ValidateInput validates a raw JSON argument object against the tool's
// required fields. The input must be a JSON object containing every required
// field; extra fields are tolerated since the model may echo optional ones.
func (t *Tool) ValidateInput(input json.RawMessage) error {
	if input == nil {
		return ErrNilInput
	}
	if len(input) == 0 {
		return ErrEmptyInput
	}

	var inputData map[string]interface{}
	if err := json.Unmarshal(input, &inputData); err != nil {
		return ErrInvalidInput
	}

	for _, req := range t.RequiredFields {
		if _, exists := inputData[req]; !exists {
			return errors.New("missing required field: " + req)
		}
	}

	return nil
}

// HasSchema returns true if the tool has an input schema defined.
func (t *Tool) HasSchema() bool {
	return t.InputSchema != nil
}

// IsValid checks if the tool is valid without returning an error.
func (t *Tool) IsValid() bool {
	return t.Validate() == nil
}

// String returns a string representation of the tool.
func (t *Tool) String() string {
	return fmt.Sprintf("Tool[%s]: %s", t.Name, t.Description)
}
