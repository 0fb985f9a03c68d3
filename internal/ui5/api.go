// Package ui5 exports UI5 API documentation dumps (api.json) as TypeScript
// declaration files. It writes text directly instead of building an Element
// Model.
package ui5

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Symbol kinds
const (
	KindNamespace = "namespace"
	KindClass     = "class"
	KindInterface = "interface"
	KindEnum      = "enum"
	KindTypedef   = "typedef"
	KindFunction  = "function"
)

// Visibility levels
const (
	VisibilityPublic     = "public"
	VisibilityProtected  = "protected"
	VisibilityRestricted = "restricted"
)

// API is the root of an api.json or api-index.json document
type API struct {
	Version string    `json:"version"`
	Library string    `json:"library"`
	Symbols []*Symbol `json:"symbols"`
}

// Symbol describes one documented entity. Nil slices and pointers mean the
// field is absent from the document; an empty slice means it was present.
type Symbol struct {
	Kind        string       `json:"kind"`
	Name        string       `json:"name"`
	Basename    string       `json:"basename"`
	Description string       `json:"description"`
	Resource    string       `json:"resource,omitempty"`
	Module      string       `json:"module,omitempty"`
	Export      string       `json:"export,omitempty"`
	Static      bool         `json:"static,omitempty"`
	Final       bool         `json:"final,omitempty"`
	Abstract    bool         `json:"abstract,omitempty"`
	Since       string       `json:"since,omitempty"`
	Visibility  string       `json:"visibility"`
	Extends     string       `json:"extends,omitempty"`
	Implements  []string     `json:"implements,omitempty"`
	Constructor *Constructor `json:"constructor,omitempty"`
	Events      []*Method    `json:"events,omitempty"`
	Properties  []*Property  `json:"properties,omitempty"`
	Methods     []*Method    `json:"methods,omitempty"`
	Component   string       `json:"component,omitempty"`
	Nodes       []*Symbol    `json:"nodes,omitempty"`
	Metadata    *Metadata    `json:"ui5-metadata,omitempty"`
	Lib         string       `json:"lib,omitempty"`
	Deprecated  Deprecation  `json:"deprecated"`

	// function-kind symbols carry their signature directly
	Parameters  []*Parameter `json:"parameters,omitempty"`
	ReturnValue *ReturnValue `json:"returnValue,omitempty"`
}

// Metadata is the "ui5-metadata" block
type Metadata struct {
	Stereotype string `json:"stereotype"`
	Basetype   string `json:"basetype"`
}

// Property is a symbol property, or an enum value
type Property struct {
	Name        string `json:"name"`
	Visibility  string `json:"visibility"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Method is a method or event
type Method struct {
	Name        string       `json:"name"`
	Visibility  string       `json:"visibility"`
	Description string       `json:"description"`
	Since       string       `json:"since,omitempty"`
	Static      bool         `json:"static,omitempty"`
	ReturnValue *ReturnValue `json:"returnValue,omitempty"`
	Parameters  []*Parameter `json:"parameters,omitempty"`
	Deprecated  Deprecation  `json:"deprecated"`
}

// ReturnValue describes a method result
type ReturnValue struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Types       []ParameterType `json:"types,omitempty"`
}

// Parameter is a method or constructor parameter. Depth > 0 marks a nested
// property of an object parameter.
type Parameter struct {
	Name         string          `json:"name"`
	Optional     bool            `json:"optional,omitempty"`
	Description  string          `json:"description"`
	Type         string          `json:"type,omitempty"`
	Types        []ParameterType `json:"types,omitempty"`
	DefaultValue any             `json:"defaultValue,omitempty"`
	Depth        int             `json:"depth,omitempty"`
}

// ParameterType is one member of a type union. Method parameters spell it
// "value", constructor parameters "name".
type ParameterType struct {
	Value string `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
}

func (t ParameterType) String() string {
	if t.Value != "" {
		return t.Value
	}
	return t.Name
}

// Constructor is a class constructor
type Constructor struct {
	Visibility  string       `json:"visibility"`
	Description string       `json:"description"`
	Parameters  []*Parameter `json:"parameters,omitempty"`
}

// Deprecation holds the "deprecated" field, which is either a boolean or an
// object with since/text.
type Deprecation struct {
	// Flag is set for a literal true
	Flag bool `json:"-"`
	// Notice is set for the object form
	Notice bool   `json:"-"`
	Since  string `json:"since,omitempty"`
	Text   string `json:"text,omitempty"`
}

// IsDeprecated reports whether either form marks the entity deprecated
func (d Deprecation) IsDeprecated() bool {
	return d.Flag || d.Notice
}

func (d *Deprecation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*d = Deprecation{}
		return nil
	case bytes.Equal(data, []byte("true")):
		*d = Deprecation{Flag: true}
		return nil
	case len(data) > 0 && data[0] == '{':
		var notice struct {
			Since string `json:"since"`
			Text  string `json:"text"`
		}
		if err := json.Unmarshal(data, &notice); err != nil {
			return err
		}
		*d = Deprecation{Notice: true, Since: notice.Since, Text: notice.Text}
		return nil
	}
	return fmt.Errorf("unsupported deprecated value: %s", data)
}

// ParseAPI decodes an api.json document
func ParseAPI(data []byte) (*API, error) {
	var api API
	if err := json.Unmarshal(data, &api); err != nil {
		return nil, fmt.Errorf("failed to parse api data: %w", err)
	}
	return &api, nil
}
