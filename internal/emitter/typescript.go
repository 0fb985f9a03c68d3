package emitter

import (
	"fmt"
	"strings"

	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/rs/zerolog/log"
)

// TypeScriptEmitter generates TypeScript source (.ts) or ambient declaration
// (.d.ts) files. Declaration output omits the export keyword.
type TypeScriptEmitter struct {
	declaration bool
}

// NewTypeScriptEmitter creates the .ts emitter
func NewTypeScriptEmitter() *TypeScriptEmitter {
	return &TypeScriptEmitter{}
}

// NewDeclarationEmitter creates the .d.ts emitter
func NewDeclarationEmitter() *TypeScriptEmitter {
	return &TypeScriptEmitter{declaration: true}
}

func (e *TypeScriptEmitter) Name() string {
	if e.declaration {
		return "dts"
	}
	return "typescript"
}

func (e *TypeScriptEmitter) Language() string { return "typescript" }

func (e *TypeScriptEmitter) FileExtension() string {
	if e.declaration {
		return ".d.ts"
	}
	return ".ts"
}

// Emit renders the package wrapped in its namespace chain
func (e *TypeScriptEmitter) Emit(pkg *model.PackageElement) (string, error) {
	if pkg == nil {
		return "", ErrInvalidPackage
	}

	w := &tsWriter{
		declaration: e.declaration,
		symbols:     NewSymbolTable(pkg),
	}
	for _, el := range pkg.Wrap() {
		if err := w.element(el, 0); err != nil {
			return "", err
		}
	}
	return w.b.String(), nil
}

type tsWriter struct {
	b           model.Builder
	declaration bool
	symbols     SymbolTable
}

func (w *tsWriter) element(el model.Element, level int) error {
	switch el.Kind() {
	case model.KindNamespace:
		return w.namespace(el.(*model.NamespaceElement), level)
	case model.KindClass:
		w.class(el.(*model.ClassElement), level)
	case model.KindInterface:
		w.iface(el.(*model.InterfaceElement), level)
	case model.KindEnum:
		w.enum(el.(*model.EnumElement), level)
	case model.KindTypedef:
		w.typedef(el.(*model.TypedefElement), level)
	default:
		return fmt.Errorf("unsupported element kind %q: %s", el.Kind(), el.ElementName())
	}
	return nil
}

func (w *tsWriter) exported(v model.Visibility) string {
	if v == model.Public && !w.declaration {
		return "export "
	}
	return ""
}

func (w *tsWriter) namespace(ns *model.NamespaceElement, level int) error {
	log.Debug().Str("element", ns.String()).Int("level", level).Msg("emitting")

	w.b.Write(model.Indent(level))
	w.b.Write(w.exported(ns.Visibility))
	if level == 0 {
		w.b.Write("declare ")
	}
	w.b.Writef("namespace ", ns.Name, " {")
	w.b.WriteLine("")

	// children sharing kind and name collapse to the first occurrence
	seen := make(map[string]bool)
	for _, child := range ns.Elements {
		key := child.String()
		if seen[key] {
			log.Debug().Str("element", key).Msg("skipping duplicate")
			continue
		}
		seen[key] = true
		if err := w.element(child, level+1); err != nil {
			return err
		}
	}

	w.b.Write(model.Indent(level))
	w.b.WriteLine("}")
	return nil
}

func (w *tsWriter) class(c *model.ClassElement, level int) {
	log.Debug().Str("element", c.String()).Int("level", level).Msg("emitting")

	w.b.Write(model.Indent(level))
	w.b.Write(w.exported(c.Visibility))
	if c.Abstract {
		w.b.Write("abstract ")
	}
	w.b.Writef("class ", c.Name, " ")
	if c.Extends != "" {
		w.b.Writef("extends ", c.Extends, " ")
	}
	implements := w.symbols.Known(c.Implements)
	if len(implements) > 0 {
		w.b.Writef("implements ", strings.Join(implements, ", "), " ")
	}
	w.b.WriteLine("{")

	emitted := make(map[*model.FunctionElement]bool)
	for _, m := range c.Methods {
		if m.Static && m.Visibility == model.Public {
			w.function(m, level+1)
			emitted[m] = true
		}
	}
	for _, ctor := range c.Constructors {
		w.constructor(ctor, level+1)
	}
	for _, p := range c.Properties {
		w.property(p, level+1)
	}
	for _, m := range c.Methods {
		if !emitted[m] {
			w.function(m, level+1)
		}
	}

	w.b.Write(model.Indent(level))
	w.b.WriteLine("}")
	w.b.WriteLine("")
}

func (w *tsWriter) iface(i *model.InterfaceElement, level int) {
	log.Debug().Str("element", i.String()).Int("level", level).Msg("emitting")

	w.b.Write(model.Indent(level))
	w.b.Write(w.exported(i.Visibility))
	w.b.Writef("interface ", i.Name, " ")
	if len(i.Extends) > 0 {
		w.b.Writef("extends ", strings.Join(i.Extends, ", "), " ")
	}
	w.b.WriteLine("{")

	for _, p := range i.Properties {
		w.property(p, level+1)
	}
	for _, m := range i.Methods {
		w.function(m, level+1)
	}

	w.b.Write(model.Indent(level))
	w.b.WriteLine("}")
	w.b.WriteLine("")
}

func (w *tsWriter) enum(en *model.EnumElement, level int) {
	log.Debug().Str("element", en.String()).Int("level", level).Msg("emitting")

	w.b.Write(model.Indent(level))
	w.b.Write(w.exported(en.Visibility))
	w.b.Writef("enum ", en.Name, " {")
	w.b.WriteLine("")

	for _, v := range en.Values {
		w.b.Write(model.Indent(level + 1))
		w.b.Write(v.Name)
		if v.Value != "" {
			w.b.Writef(" = ", v.Value)
		}
		w.b.WriteLine(",")
	}

	w.b.Write(model.Indent(level))
	w.b.WriteLine("}")
	w.b.WriteLine("")
}

func (w *tsWriter) typedef(t *model.TypedefElement, level int) {
	log.Debug().Str("element", t.String()).Int("level", level).Msg("emitting")

	w.b.Write(model.Indent(level))
	w.b.Write(w.exported(t.Visibility))
	w.b.Writef("type ", t.Name, " = ", union(t.Types, false, "any"), ";")
	w.b.WriteLine("")
	w.b.WriteLine("")
}

func (w *tsWriter) function(f *model.FunctionElement, level int) {
	w.b.Write(model.Indent(level))
	w.b.Write(modifier(f.Visibility))
	if f.Static {
		w.b.Write("static ")
	}
	w.b.Writef(f.Name, "(", parameters(f.Parameters), "): ", union(f.Returns, false, "void"), ";")
	w.b.WriteLine("")
}

func (w *tsWriter) constructor(c *model.ConstructorElement, level int) {
	w.b.Write(model.Indent(level))
	w.b.Write(modifier(c.Visibility))
	w.b.Writef("constructor(", parameters(c.Parameters), ");")
	w.b.WriteLine("")
}

func (w *tsWriter) property(p *model.PropertyElement, level int) {
	w.b.Write(model.Indent(level))
	w.b.Write(modifier(p.Visibility))
	if p.Static {
		w.b.Write("static ")
	}
	if p.Final {
		w.b.Write("readonly ")
	}
	w.b.Write(p.Name)
	if p.Optional {
		w.b.Write("?")
	}
	w.b.Writef(": ", union(p.Types, p.Array, "any"), ";")
	w.b.WriteLine("")
}

func modifier(v model.Visibility) string {
	switch v {
	case model.Protected:
		return "protected "
	case model.Private:
		return "private "
	default:
		return ""
	}
}

// parameters renders a parameter list; callback parameters render as a nested
// signature "(a: A, b: B) => R"
func parameters(params []*model.ParameterElement) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var sb strings.Builder
		sb.WriteString(p.Name)
		if p.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		if p.Callback {
			sb.WriteString("(")
			sb.WriteString(parameters(p.Parameters))
			sb.WriteString(") => ")
			sb.WriteString(union(p.Types, false, "void"))
		} else {
			sb.WriteString(union(p.Types, false, "any"))
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ", ")
}

func union(types []model.ParameterTypeElement, array bool, empty string) string {
	if len(types) == 0 {
		return empty
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		if array {
			names = append(names, t.Name+"[]")
		} else {
			names = append(names, t.Name)
		}
	}
	return strings.Join(names, " | ")
}
