package ui5

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/QTest-hq/dtsgen/internal/emitter"
	"github.com/QTest-hq/dtsgen/internal/naming"
	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidAPIData is returned for documents without a library name
	ErrInvalidAPIData = errors.New("invalid api data")

	// ErrUnknownSymbolKind is returned when a referenced symbol has a kind
	// the exporter cannot render
	ErrUnknownSymbolKind = errors.New("unknown symbol kind")
)

// EventProviderClass keeps its static extend and getMetadata methods
const EventProviderClass = "sap.ui.base.EventProvider"

// excluded top-level namespace prefixes
var skippedPrefixes = []string{"sap.ui.test", "sap.ui.model.odata.", "jQuery"}

// Exporter writes one declaration file per library document
type Exporter struct {
	header string
}

// NewExporter creates an exporter. An empty header selects
// emitter.DefaultHeader.
func NewExporter(header string) *Exporter {
	if header == "" {
		header = emitter.DefaultHeader
	}
	return &Exporter{header: header}
}

// Run decodes data and writes <outFolder>/<library>.d.ts, returning its path
func (e *Exporter) Run(data []byte, outFolder string) (string, error) {
	api, err := ParseAPI(data)
	if err != nil {
		return "", err
	}
	if api.Library == "" {
		return "", ErrInvalidAPIData
	}

	outFile := filepath.Join(outFolder, api.Library+".d.ts")
	f, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outFile, err)
	}
	defer f.Close()

	if err := e.Export(api, f); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", outFile, err)
	}

	log.Info().Str("library", api.Library).Str("version", api.Version).Str("file", outFile).Msg("out file")
	return outFile, nil
}

// Export renders the library to w. Nothing is written when rendering fails.
func (e *Exporter) Export(api *API, w io.Writer) error {
	if api == nil || api.Library == "" {
		return ErrInvalidAPIData
	}

	x := newExport(api.Symbols)
	x.b.Write(e.header)
	if err := x.library(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, x.b.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", api.Library, err)
	}
	return nil
}

// export holds the lookup tables of one Export call
type export struct {
	b model.Builder

	// symbolsByName holds every symbol of the document
	symbolsByName map[string]*Symbol
	// classSymbolsByName holds the class-kind symbols used for overload lookup
	classSymbolsByName map[string]*Symbol
	// emitted guarantees each symbol is rendered at most once
	emitted map[string]bool

	namespaces []*Symbol
}

func newExport(symbols []*Symbol) *export {
	x := &export{
		symbolsByName:      make(map[string]*Symbol, len(symbols)),
		classSymbolsByName: make(map[string]*Symbol),
		emitted:            make(map[string]bool),
	}
	for _, s := range symbols {
		if s == nil {
			continue
		}
		x.symbolsByName[s.Name] = s
		if s.Kind == KindClass {
			x.classSymbolsByName[s.Name] = s
		}
		if s.Kind != KindNamespace || !topLevel(s.Name) {
			continue
		}
		x.namespaces = append(x.namespaces, s)
		x.emitted[s.Name] = true
	}
	return x
}

func topLevel(name string) bool {
	if strings.Index(name, ":") > 0 {
		return false
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// lookup resolves a node reference that has not been rendered yet
func (x *export) lookup(name string) *Symbol {
	s, ok := x.symbolsByName[name]
	if !ok || x.emitted[name] {
		return nil
	}
	return s
}

func (x *export) library() error {
	for _, s := range x.namespaces {
		segments := strings.Split(s.Name, ".")
		head := ""
		if len(segments) > 1 {
			for i, segment := range segments[:len(segments)-1] {
				wrapper := ""
				if i == 0 {
					wrapper = "declare"
				}
				namespaces(&x.b, segment, wrapper)
			}
		} else {
			head = "declare"
		}

		var err error
		switch {
		case s.Metadata != nil && s.Metadata.Stereotype != "":
			x.typeAlias(s)
		case s.Events != nil && s.Nodes == nil:
			x.class(s)
		case s.Properties != nil && isEnumeration(s):
			x.enum(s)
		default:
			err = x.namespace(s, head)
		}
		if err != nil {
			return err
		}

		for range segments[:len(segments)-1] {
			ends(&x.b)
		}
	}
	return nil
}

func isEnumeration(s *Symbol) bool {
	return strings.Contains(s.Description, "Enumeration")
}

func (x *export) symbol(s *Symbol) error {
	x.emitted[s.Name] = true

	switch s.Kind {
	case KindNamespace:
		return x.namespace(s, "")
	case KindEnum:
		x.enum(s)
	case KindClass:
		x.class(s)
		if s.Nodes != nil {
			namespaces(&x.b, naming.Base(s.Name), "")
			if err := x.nodes(s); err != nil {
				return err
			}
			ends(&x.b)
		}
	case KindInterface:
		x.iface(s)
	case KindTypedef:
		if s.Properties != nil {
			x.iface(s)
		}
	case KindFunction:
		x.function(s)
	default:
		return fmt.Errorf("%w: %s @%s", ErrUnknownSymbolKind, s.Kind, s.Name)
	}
	return nil
}

func (x *export) nodes(s *Symbol) error {
	for _, node := range s.Nodes {
		if node == nil {
			continue
		}
		child := x.lookup(node.Name)
		if child == nil {
			continue
		}
		if err := x.symbol(child); err != nil {
			return err
		}
	}
	return nil
}

func (x *export) typeAlias(s *Symbol) {
	log.Debug().Str("kind", "type").Str("name", s.Name).Msg("out")

	name := s.Basename
	if name == "" {
		name = naming.Base(s.Name)
	}
	comments(&x.b, s.Description)
	x.b.Writef("export type ", name, " = ", naming.MapType(s.Metadata.Basetype), ";")
	x.b.WriteLine("")
}

func (x *export) namespace(s *Symbol, head string) error {
	log.Debug().Str("kind", s.Kind).Str("name", s.Name).Msg("out")

	comments(&x.b, s.Description)
	namespaces(&x.b, naming.Base(s.Name), head)

	if s.Properties != nil {
		if isEnumeration(s) {
			x.enum(s)
		} else {
			for _, p := range s.Properties {
				if p.Visibility == VisibilityProtected || p.Visibility == VisibilityRestricted {
					continue
				}
				x.property(p, "var")
			}
		}
	}

	for _, m := range s.Methods {
		if m.Visibility == VisibilityProtected || m.Visibility == VisibilityRestricted {
			continue
		}
		x.method(selfReturn(m, s.Name), "function")
	}

	if err := x.nodes(s); err != nil {
		return err
	}
	ends(&x.b)
	return nil
}

// selfReturn replaces a return type naming the enclosing namespace with
// object. The document is not modified.
func selfReturn(m *Method, owner string) *Method {
	rv := m.ReturnValue
	if rv == nil {
		return m
	}
	self := rv.Type == owner
	for _, t := range rv.Types {
		if t.Value == owner {
			self = true
		}
	}
	if !self {
		return m
	}

	fixed := *rv
	if fixed.Type == owner {
		fixed.Type = "object"
	}
	if rv.Types != nil {
		fixed.Types = make([]ParameterType, len(rv.Types))
		for i, t := range rv.Types {
			if t.Value == owner {
				t.Value = "object"
			}
			fixed.Types[i] = t
		}
	}
	copied := *m
	copied.ReturnValue = &fixed
	return &copied
}

func (x *export) class(s *Symbol) {
	log.Debug().Str("kind", s.Kind).Str("name", s.Name).Msg("out")

	comments(&x.b, s.Description)
	implements := make([]string, 0, len(s.Implements))
	for _, name := range s.Implements {
		if _, ok := x.symbolsByName[name]; ok {
			implements = append(implements, name)
		}
	}
	classes(&x.b, naming.Base(s.Name), s.Extends, implements, s.Abstract)

	for _, m := range s.Methods {
		if !m.Static || m.Visibility != VisibilityPublic {
			continue
		}
		if s.Name != EventProviderClass &&
			(strings.HasSuffix(m.Name, "extend") || strings.HasSuffix(m.Name, "getMetadata")) {
			continue
		}
		x.method(m, "")
	}

	if s.Constructor != nil {
		x.constructor(s.Constructor)
	}

	for _, p := range s.Properties {
		if p.Visibility == VisibilityRestricted {
			continue
		}
		x.property(p, "")
	}

	for _, m := range s.Methods {
		if m.Static || m.Visibility == VisibilityRestricted || skipInstanceMethod(m) {
			continue
		}
		inherited, emitOwn := ResolveOverloads(x.classSymbolsByName, s, m)
		for _, overload := range inherited {
			x.method(overload, "")
		}
		if emitOwn {
			x.method(m, "")
		}
	}

	ends(&x.b)
}

// skipInstanceMethod filters members that do not translate to a usable
// declaration
func skipInstanceMethod(m *Method) bool {
	switch {
	case (m.Name == "addStyleClass" || m.Name == "removeStyleClass") && m.Parameters == nil:
		return true
	case m.Name == "getDomRef" && (m.ReturnValue == nil || naming.MapType(m.ReturnValue.Type) != naming.TypeElement):
		return true
	case m.Name == "getMetadata":
		return true
	case strings.HasPrefix(m.Name, "set") && m.Parameters == nil:
		return true
	case strings.HasPrefix(m.Name, "get") && m.ReturnValue == nil:
		return true
	}
	return false
}

func (x *export) iface(s *Symbol) {
	log.Debug().Str("kind", s.Kind).Str("name", s.Name).Msg("out")

	comments(&x.b, s.Description)
	interfaces(&x.b, naming.Base(s.Name), s.Implements)

	for _, p := range s.Properties {
		if p.Visibility == VisibilityRestricted {
			continue
		}
		x.property(p, "")
	}
	for _, m := range s.Methods {
		if m.Static || m.Visibility == VisibilityRestricted {
			continue
		}
		x.method(m, "")
	}

	ends(&x.b)
}

func (x *export) enum(s *Symbol) {
	log.Debug().Str("kind", s.Kind).Str("name", s.Name).Msg("out")

	comments(&x.b, s.Description)
	x.b.Writef("export enum ", naming.Base(s.Name), " ")
	x.b.WriteLine("{")
	for _, p := range s.Properties {
		comments(&x.b, p.Description)
		enumValue(&x.b, naming.Base(p.Name))
	}
	ends(&x.b)
}

func (x *export) function(s *Symbol) {
	log.Debug().Str("kind", s.Kind).Str("name", s.Name).Msg("out")

	x.method(&Method{
		Name:        naming.Base(s.Name),
		Visibility:  s.Visibility,
		Description: s.Description,
		Parameters:  s.Parameters,
		ReturnValue: s.ReturnValue,
		Deprecated:  s.Deprecated,
	}, "function")
}

func (x *export) property(p *Property, head string) {
	comments(&x.b, p.Description)
	if head != "" {
		x.b.Writef(head, " ")
	} else if modifier := visibilities(p.Visibility); modifier != "" {
		x.b.Writef(modifier, " ")
	}

	typ := naming.TypeAny
	if p.Type != "" {
		typ = naming.MapType(p.Type)
	}
	x.b.Writef(naming.Base(p.Name), ": ", typ, ";")
	x.b.WriteLine("")
}

// method renders a doc comment and a signature. Deprecated methods are
// skipped.
func (x *export) method(m *Method, head string) {
	if m.Deprecated.IsDeprecated() {
		return
	}

	x.b.WriteLine("/**")
	if m.Description != "" {
		x.b.Writef(" * ", m.Description)
		x.b.WriteLine("")
	}
	paramDocs(&x.b, m.Parameters)
	if m.ReturnValue != nil {
		x.b.Writef(" * @returns ", naming.MapType(m.ReturnValue.Type), " ", m.ReturnValue.Description)
		x.b.WriteLine("")
	}
	x.b.WriteLine(" */")

	if head != "" {
		x.b.Writef(head, " ")
	} else {
		if modifier := visibilities(m.Visibility); modifier != "" {
			x.b.Writef(modifier, " ")
		}
		if m.Static {
			x.b.Write("static ")
		}
	}
	x.b.Writef(naming.Base(m.Name), "(", parameterList(m.Parameters), "): ", returnType(m.Name, m.ReturnValue), ";")
	x.b.WriteLine("")
}

func (x *export) constructor(c *Constructor) {
	x.b.WriteLine("/**")
	if c.Description != "" {
		x.b.Writef(" * ", c.Description)
		x.b.WriteLine("")
	}
	paramDocs(&x.b, c.Parameters)
	x.b.WriteLine(" */")

	x.b.Writef("constructor(", parameterList(c.Parameters), ");")
	x.b.WriteLine("")
}
