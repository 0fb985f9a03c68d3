// Package wsdl reads WSDL service descriptions (and their embedded XSD
// schemas) into the Element Model.
package wsdl

import (
	"errors"

	"github.com/QTest-hq/dtsgen/internal/naming"
	"github.com/QTest-hq/dtsgen/internal/xmltree"
	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/rs/zerolog/log"
)

// ErrInvalidDocument is returned when no document is supplied
var ErrInvalidDocument = errors.New("invalid document")

// ServiceClientName is the name of the interface collecting portType operations
const ServiceClientName = "ServiceClient"

// CompletedParameter is the name of the synthesized callback parameter
const CompletedParameter = "completed"

// Local element names
const (
	tagDefinitions   = "definitions"
	tagPortType      = "portType"
	tagTypes         = "types"
	tagService       = "service"
	tagBinding       = "binding"
	tagOperation     = "operation"
	tagInput         = "input"
	tagOutput        = "output"
	tagFault         = "fault"
	tagSchema        = "schema"
	tagElement       = "element"
	tagComplexType   = "complexType"
	tagSimpleContent = "simpleContent"
	tagSimpleType    = "simpleType"
	tagSequence      = "sequence"
	tagExtension     = "extension"
	tagRestriction   = "restriction"
	tagEnumeration   = "enumeration"
)

// DefaultBasicTypes are type names already considered primitive by the target
var DefaultBasicTypes = []string{"string", "number", "boolean", "Date"}

// Parser converts a WSDL document into a package
type Parser struct {
	basicTypes map[string]bool
}

// NewParser creates a parser. simpleType definitions whose normalized name is
// one of basicTypes are skipped.
func NewParser(basicTypes ...string) *Parser {
	p := &Parser{basicTypes: make(map[string]bool)}
	for _, t := range basicTypes {
		p.basicTypes[t] = true
	}
	return p
}

// Parse walks the document and returns the populated package
func (p *Parser) Parse(doc xmltree.Node) (*model.PackageElement, error) {
	if doc == nil {
		return nil, ErrInvalidDocument
	}

	run := &parsing{parser: p, pkg: model.NewPackage("")}
	for _, definitions := range doc.ChildElements(tagDefinitions) {
		run.definitions(definitions)
	}
	return run.pkg, nil
}

// parsing holds the state of one Parse call
type parsing struct {
	parser *Parser
	pkg    *model.PackageElement
}

func (r *parsing) definitions(node xmltree.Node) {
	for _, child := range node.ChildElements("") {
		switch child.Tag() {
		case tagPortType:
			r.portType(child)
		case tagTypes:
			r.types(child)
		case tagService, tagBinding:
			// schema-only generation
		}
	}
}

func (r *parsing) portType(node xmltree.Node) {
	r.pkg.Name = xmltree.Attr(node, "name")
	log.Debug().Str("package", r.pkg.Name).Msg("parsing portType")

	client := &model.InterfaceElement{Name: ServiceClientName}
	for _, op := range node.ChildElements(tagOperation) {
		client.Methods = append(client.Methods, operation(op))
	}
	r.pkg.Add(client)
}

func operation(node xmltree.Node) *model.FunctionElement {
	method := &model.FunctionElement{Name: xmltree.Attr(node, "name")}
	for _, child := range node.ChildElements("") {
		switch child.Tag() {
		case tagInput:
			method.Parameters = append(method.Parameters, messageParameter(child))
		case tagOutput, tagFault:
			completed := method.Parameter(CompletedParameter)
			if completed == nil || !completed.Callback {
				completed = model.NewFnParameter(CompletedParameter)
				method.Parameters = append(method.Parameters, completed)
			}
			completed.Parameters = append(completed.Parameters, messageParameter(child))
		}
	}
	return method
}

func messageParameter(node xmltree.Node) *model.ParameterElement {
	return &model.ParameterElement{
		Name:  naming.Normalize(node.Tag()),
		Types: []model.ParameterTypeElement{typeOf(xmltree.Attr(node, "message"))},
	}
}

func (r *parsing) types(node xmltree.Node) {
	for _, schema := range node.ChildElements(tagSchema) {
		r.schema(schema)
	}
}

func (r *parsing) schema(node xmltree.Node) {
	for _, child := range node.ChildElements("") {
		switch child.Tag() {
		case tagElement:
			r.element(child)
		case tagComplexType:
			r.complexType(child)
		case tagSimpleType:
			r.simpleType(child)
		}
	}
}

func (r *parsing) element(node xmltree.Node) {
	iface := &model.InterfaceElement{Name: xmltree.Attr(node, "name")}
	iface.Extend(naming.Normalize(xmltree.Attr(node, "type")))
	log.Debug().Str("element", iface.String()).Msg("parsed schema element")
	r.pkg.Add(iface)
}

func (r *parsing) complexType(node xmltree.Node) {
	name := xmltree.Attr(node, "name")
	for _, child := range node.ChildElements("") {
		switch child.Tag() {
		case tagSequence:
			iface := &model.InterfaceElement{Name: name}
			for _, item := range child.ChildElements(tagElement) {
				iface.Properties = append(iface.Properties, property(item))
			}
			log.Debug().Str("element", iface.String()).Msg("parsed complexType")
			r.pkg.Add(iface)
		case tagSimpleContent:
			for _, ext := range child.ChildElements(tagExtension) {
				typedef := &model.TypedefElement{
					Name:  name,
					Types: []model.ParameterTypeElement{typeOf(xmltree.Attr(ext, "base"))},
				}
				log.Debug().Str("element", typedef.String()).Msg("parsed simpleContent")
				r.pkg.Add(typedef)
			}
		}
	}
}

func property(node xmltree.Node) *model.PropertyElement {
	prop := &model.PropertyElement{Name: xmltree.Attr(node, "name")}
	prop.AddType(typeOf(xmltree.Attr(node, "type")))
	if xmltree.Attr(node, "minOccurs") == "0" {
		prop.Optional = true
	}
	if xmltree.Attr(node, "maxOccurs") == "unbounded" {
		prop.Array = true
	}
	return prop
}

func (r *parsing) simpleType(node xmltree.Node) {
	for _, restriction := range node.ChildElements(tagRestriction) {
		typedef := &model.TypedefElement{Name: naming.Normalize(xmltree.Attr(node, "name"))}
		if r.parser.basicTypes[typedef.Name] {
			return
		}

		values := restriction.ChildElements(tagEnumeration)
		if len(values) > 0 {
			for _, value := range values {
				literal := naming.Normalize(xmltree.Attr(value, "value"))
				typedef.Types = append(typedef.Types, model.ParameterTypeElement{
					Name: `"` + literal + `"`,
				})
			}
		} else {
			typedef.Types = append(typedef.Types, typeOf(xmltree.Attr(restriction, "base")))
		}
		log.Debug().Str("element", typedef.String()).Msg("parsed simpleType")
		r.pkg.Add(typedef)
	}
}

// typeOf builds a normalized type reference; a missing reference becomes any
func typeOf(raw string) model.ParameterTypeElement {
	name := naming.Normalize(raw)
	if name == "" {
		name = naming.TypeAny
	}
	return model.ParameterTypeElement{Name: name}
}
