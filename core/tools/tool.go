// Package tools provides the client tool declaration and dispatch substrate:
// named tools with typed parameters, lenient argument decoding, and schema
// payloads for the conversation session handshake.
package tools

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// ParameterBase describes a single declared tool parameter.
type ParameterBase struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Function is the wire-facing description of a tool.
type Function struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Parameters  map[string]ParameterBase `json:"parameters,omitempty"`
}

// Tool is a named remote-procedure-style handler invocable by the
// conversation session. Arguments arrive as a JSON object string; the
// response is a short human-readable acknowledgment.
type Tool struct {
	Function Function

	execute func(arguments string) (string, error)
	schema  *jsonschema.Schema
}

// NewTool declares a tool with typed parameters. Argument decoding is
// lenient: missing fields stay zero, extra fields are ignored, and a field
// that fails to decode is skipped rather than failing the call.
func NewTool[P any](name, description string, parameters map[string]ParameterBase, handler func(P) (string, error)) Tool {
	return Tool{
		Function: Function{Name: name, Description: description, Parameters: parameters},
		execute: func(arguments string) (string, error) {
			return handler(DecodeLenient[P](arguments))
		},
		schema: reflectSchema[P](),
	}
}

// Execute runs the tool against a raw JSON arguments string.
func (t Tool) Execute(arguments string) (string, error) {
	return t.execute(arguments)
}

// Schema returns the reflected parameter schema for the handshake payload.
func (t Tool) Schema() *jsonschema.Schema {
	return t.schema
}

// DecodeLenient unmarshals a JSON object into P without ever failing: on a
// full-document decode error it falls back to field-by-field decoding,
// dropping the fields that do not fit.
func DecodeLenient[P any](arguments string) P {
	var params P
	trimmed := strings.TrimSpace(arguments)
	if trimmed == "" {
		return params
	}

	if err := json.Unmarshal([]byte(trimmed), &params); err == nil {
		return params
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return params
	}

	value := reflect.ValueOf(&params).Elem()
	if value.Kind() != reflect.Struct {
		return params
	}

	structType := value.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		key := jsonFieldName(field)
		if key == "-" {
			continue
		}
		rawField, ok := raw[key]
		if !ok {
			continue
		}
		target := reflect.New(field.Type)
		if err := json.Unmarshal(rawField, target.Interface()); err != nil {
			continue
		}
		value.Field(i).Set(target.Elem())
	}

	return params
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func reflectSchema[P any]() *jsonschema.Schema {
	var params P
	if reflect.TypeOf(params) == nil || reflect.ValueOf(params).Kind() != reflect.Struct {
		return nil
	}

	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(params)
}
