// Package tools describes callable capabilities so they can be advertised in a prompt.
// Capabilities are only described here; nothing in this package invokes them.
package tools

import (
	"errors"
	"fmt"
	"sync"

	"github.com/davidbz/ollamagen/internal/domain"
)

// ParamType is the declared type of a capability parameter.
type ParamType string

const (
	TypeUnset   ParamType = ""
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

const (
	descriptorType = "function"
	parametersType = "object"
)

// UnsupportedTypeError reports a parameter whose type cannot be advertised.
type UnsupportedTypeError struct {
	Capability string
	Parameter  string
	Type       ParamType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported parameter type %q for %s.%s", e.Type, e.Capability, e.Parameter)
}

// Parameter declares one argument of a capability.
type Parameter struct {
	Name        string
	Description string
	Type        ParamType
	Enum        []string
	Required    bool
}

// Capability declares a named function the model may ask to call.
type Capability struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Registry holds capabilities in registration order.
type Registry struct {
	mu           sync.RWMutex
	capabilities []Capability
	names        map[string]struct{}
}

// NewRegistry creates a registry pre-populated with the given capabilities.
func NewRegistry(capabilities ...Capability) (*Registry, error) {
	r := &Registry{
		mu:    sync.RWMutex{},
		names: make(map[string]struct{}),
	}

	for _, c := range capabilities {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds a capability.
func (r *Registry) Register(c Capability) error {
	if c.Name == "" {
		return errors.New("capability name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[c.Name]; exists {
		return fmt.Errorf("capability %s already registered", c.Name)
	}

	r.names[c.Name] = struct{}{}
	r.capabilities = append(r.capabilities, c)
	return nil
}

// Descriptors builds the tool descriptors of every registered capability.
func (r *Registry) Descriptors() ([]domain.ToolDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]domain.ToolDescriptor, 0, len(r.capabilities))
	for _, c := range r.capabilities {
		descriptor, err := Describe(c)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, descriptor)
	}

	return descriptors, nil
}

// Describe converts a single capability to its descriptor.
func Describe(c Capability) (domain.ToolDescriptor, error) {
	properties := make(map[string]domain.ParameterDescriptor, len(c.Parameters))
	required := make([]string, 0, len(c.Parameters))

	for _, p := range c.Parameters {
		schemaType, err := schemaTypeOf(p.Type)
		if err != nil {
			return domain.ToolDescriptor{}, &UnsupportedTypeError{Capability: c.Name, Parameter: p.Name, Type: p.Type}
		}

		if len(p.Enum) > 0 && p.Type != TypeString {
			return domain.ToolDescriptor{}, &UnsupportedTypeError{Capability: c.Name, Parameter: p.Name, Type: p.Type}
		}

		properties[p.Name] = domain.ParameterDescriptor{
			Type:        schemaType,
			Description: p.Description,
			Enum:        p.Enum,
		}

		if p.Required {
			required = append(required, p.Name)
		}
	}

	return domain.ToolDescriptor{
		Type: descriptorType,
		Function: domain.FunctionDescriptor{
			Name:        c.Name,
			Description: c.Description,
			Parameters: domain.FunctionParameters{
				Type:       parametersType,
				Properties: properties,
				Required:   required,
			},
		},
	}, nil
}

func schemaTypeOf(t ParamType) (string, error) {
	switch t {
	case TypeString:
		return "string", nil
	case TypeInteger, TypeNumber:
		return "number", nil
	case TypeUnset:
		return "object", nil
	default:
		return "", errors.New("unsupported")
	}
}
