// Package model defines the Element Model - a language-neutral intermediate
// representation of declarable program structure. Parsers (WSDL/XSD) feed it
// and the emitters walk it to produce declaration files.
package model

import (
	"fmt"
	"strings"
)

// Kind discriminates the top-level element variants
type Kind string

const (
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindEnum      Kind = "enum"
	KindTypedef   Kind = "typedef"
)

// Visibility is the access level of an element or member
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// Element is a declarable element that can be placed in a package or namespace.
// The set of implementations is closed: NamespaceElement, ClassElement,
// InterfaceElement, EnumElement and TypedefElement.
type Element interface {
	// Kind returns the variant discriminant
	Kind() Kind

	// ElementName returns the declared name
	ElementName() string

	// String returns the display identity "<Kind>: <name>"
	String() string

	sealed()
}

func identity(kind Kind, name string) string {
	k := string(kind)
	if k != "" {
		k = strings.ToUpper(k[:1]) + k[1:]
	}
	return fmt.Sprintf("%s: %s", k, name)
}

// PackageElement is the root container produced by a parse run
type PackageElement struct {
	Name      string    `json:"name"`
	Namespace string    `json:"namespace,omitempty"` // dotted path prefix
	Elements  []Element `json:"elements"`
}

// NewPackage creates an empty package
func NewPackage(name string) *PackageElement {
	return &PackageElement{
		Name:     name,
		Elements: make([]Element, 0),
	}
}

// Add appends top-level elements in order
func (p *PackageElement) Add(elements ...Element) {
	p.Elements = append(p.Elements, elements...)
}

func (p *PackageElement) String() string {
	return fmt.Sprintf("Package: %s", p.Name)
}

// Wrap builds the namespace chain derived from the package: the lower-cased
// package name innermost, then the namespace segments from last to first.
// The package itself is not modified.
func (p *PackageElement) Wrap() []Element {
	names := make([]string, 0)
	if p.Name != "" {
		names = append(names, strings.ToLower(p.Name))
	}
	if p.Namespace != "" {
		segments := strings.Split(p.Namespace, ".")
		for i := len(segments) - 1; i >= 0; i-- {
			names = append(names, segments[i])
		}
	}

	elements := append([]Element(nil), p.Elements...)
	for _, name := range names {
		ns := NewNamespace(name)
		ns.Elements = elements
		elements = []Element{ns}
	}
	return elements
}

// NamespaceElement groups nested elements
type NamespaceElement struct {
	Name       string
	Visibility Visibility
	Elements   []Element
}

// NewNamespace creates an empty public namespace
func NewNamespace(name string) *NamespaceElement {
	return &NamespaceElement{Name: name, Elements: make([]Element, 0)}
}

func (e *NamespaceElement) Kind() Kind          { return KindNamespace }
func (e *NamespaceElement) ElementName() string { return e.Name }
func (e *NamespaceElement) String() string      { return identity(KindNamespace, e.Name) }
func (e *NamespaceElement) sealed()             {}

// ClassElement is a class declaration with a single supertype
type ClassElement struct {
	Name         string
	Visibility   Visibility
	Final        bool
	Abstract     bool
	Extends      string
	Implements   []string
	Constructors []*ConstructorElement
	Properties   []*PropertyElement
	Methods      []*FunctionElement
}

func (e *ClassElement) Kind() Kind          { return KindClass }
func (e *ClassElement) ElementName() string { return e.Name }
func (e *ClassElement) String() string      { return identity(KindClass, e.Name) }
func (e *ClassElement) sealed()             {}

// Implement adds an interface name, ignoring duplicates
func (e *ClassElement) Implement(name string) {
	if name == "" || contains(e.Implements, name) {
		return
	}
	e.Implements = append(e.Implements, name)
}

// InterfaceElement is an interface declaration with any number of supertypes
type InterfaceElement struct {
	Name       string
	Visibility Visibility
	Extends    []string
	Properties []*PropertyElement
	Methods    []*FunctionElement
}

func (e *InterfaceElement) Kind() Kind          { return KindInterface }
func (e *InterfaceElement) ElementName() string { return e.Name }
func (e *InterfaceElement) String() string      { return identity(KindInterface, e.Name) }
func (e *InterfaceElement) sealed()             {}

// Extend adds a supertype name, ignoring empties and duplicates
func (e *InterfaceElement) Extend(name string) {
	if name == "" || contains(e.Extends, name) {
		return
	}
	e.Extends = append(e.Extends, name)
}

// EnumElement is an enum declaration
type EnumElement struct {
	Name       string
	Visibility Visibility
	Values     []EnumValueElement
}

func (e *EnumElement) Kind() Kind          { return KindEnum }
func (e *EnumElement) ElementName() string { return e.Name }
func (e *EnumElement) String() string      { return identity(KindEnum, e.Name) }
func (e *EnumElement) sealed()             {}

// EnumValueElement is one named enum member
type EnumValueElement struct {
	Name  string
	Value string
}

// TypedefElement is a union type alias
type TypedefElement struct {
	Name       string
	Visibility Visibility
	Types      []ParameterTypeElement
}

func (e *TypedefElement) Kind() Kind          { return KindTypedef }
func (e *TypedefElement) ElementName() string { return e.Name }
func (e *TypedefElement) String() string      { return identity(KindTypedef, e.Name) }
func (e *TypedefElement) sealed()             {}

// FunctionElement is a method or function signature
type FunctionElement struct {
	Name       string
	Visibility Visibility
	Static     bool
	Final      bool
	Abstract   bool
	Parameters []*ParameterElement
	Returns    []ParameterTypeElement
}

// Parameter returns the parameter with the given name, or nil
func (f *FunctionElement) Parameter(name string) *ParameterElement {
	for _, p := range f.Parameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ConstructorElement is a class constructor signature
type ConstructorElement struct {
	Name       string
	Visibility Visibility
	Parameters []*ParameterElement
}

// PropertyElement is a (possibly union-typed) property
type PropertyElement struct {
	Name       string
	Visibility Visibility
	Static     bool
	Final      bool
	Optional   bool
	Array      bool
	Types      []ParameterTypeElement
}

// AddType adds a type to the union, ignoring duplicates
func (p *PropertyElement) AddType(t ParameterTypeElement) {
	for _, existing := range p.Types {
		if existing.Name == t.Name {
			return
		}
	}
	p.Types = append(p.Types, t)
}

// ParameterElement is a function parameter. When Callback is set the parameter
// is a function-typed parameter whose signature is Parameters => Types.
type ParameterElement struct {
	Name       string
	Optional   bool
	Types      []ParameterTypeElement
	Callback   bool
	Parameters []*ParameterElement
}

// NewFnParameter creates a callback-typed parameter
func NewFnParameter(name string) *ParameterElement {
	return &ParameterElement{
		Name:       name,
		Callback:   true,
		Parameters: make([]*ParameterElement, 0),
	}
}

// ParameterTypeElement names one member of a type union
type ParameterTypeElement struct {
	Name string
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
