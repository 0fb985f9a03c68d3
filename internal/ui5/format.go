package ui5

import (
	"strconv"
	"strings"

	"github.com/QTest-hq/dtsgen/internal/naming"
	"github.com/QTest-hq/dtsgen/pkg/model"
)

func comments(b *model.Builder, content string) {
	b.WriteLine("/**")
	if content != "" {
		b.Writef(" * ", content)
		b.WriteLine("")
	}
	b.WriteLine(" */")
}

func namespaces(b *model.Builder, name, head string) {
	if head != "" {
		b.Writef(head, " ")
	}
	b.Writef("namespace ", name, " ")
	b.WriteLine("{")
}

func ends(b *model.Builder) {
	b.WriteLine("}")
}

func enumValue(b *model.Builder, name string) {
	b.Writef(name, " = \"", name, "\"")
	b.WriteLine(",")
}

func classes(b *model.Builder, name, extends string, implements []string, abstract bool) {
	b.Write("export ")
	if abstract {
		b.Write("abstract ")
	}
	b.Writef("class ", name, " ")
	if extends != "" {
		b.Writef("extends ", extends, " ")
	}
	if len(implements) > 0 {
		b.Writef("implements ", strings.Join(implements, ", "), " ")
	}
	b.WriteLine("{")
}

func interfaces(b *model.Builder, name string, extends []string) {
	b.Writef("export interface ", name, " ")
	if len(extends) > 0 {
		b.Writef("extends ", strings.Join(extends, ", "), " ")
	}
	b.WriteLine("{")
}

// visibilities maps a documented visibility to a member modifier
func visibilities(visibility string) string {
	switch visibility {
	case "", VisibilityPublic:
		return ""
	case VisibilityRestricted:
		return "private"
	}
	return visibility
}

// References renders a triple-slash reference directive
func References(path string) string {
	return `/// <reference path="` + path + `" />` + model.NewLine
}

// unionOf joins the mapped spellings of a type union
func unionOf(types []ParameterType) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, naming.MapType(t.String()))
	}
	return strings.Join(names, " | ")
}

func parameterType(p *Parameter) string {
	if len(p.Types) > 0 {
		return unionOf(p.Types)
	}
	if p.Type != "" {
		return naming.MapType(p.Type)
	}
	return naming.TypeAny
}

// paramDocs writes one @param line per top-level parameter
func paramDocs(b *model.Builder, params []*Parameter) {
	for _, p := range params {
		if p.Depth > 0 {
			continue
		}
		b.Write(" * @param ")
		if len(p.Types) > 0 {
			b.Writef("{", unionOf(p.Types), "} ")
		} else if p.Type != "" {
			b.Writef("{", naming.MapType(p.Type), "} ")
		}
		b.Writef(p.Name, " ", p.Description)
		b.WriteLine("")
	}
}

// parameterList renders top-level parameters. A parameter is optional only
// when every parameter after it is optional too.
func parameterList(params []*Parameter) string {
	parts := make([]string, 0, len(params))
	for i, p := range params {
		if p.Depth > 0 {
			continue
		}
		name := p.Name
		if strings.Index(name, "&") > 0 || strings.Index(name, ";") > 0 {
			name = "arg" + strconv.Itoa(i)
		}
		if p.Optional && trailingOptional(params[i+1:]) {
			name += "?"
		}
		parts = append(parts, name+": "+parameterType(p))
	}
	return strings.Join(parts, ", ")
}

func trailingOptional(params []*Parameter) bool {
	for _, p := range params {
		if !p.Optional {
			return false
		}
	}
	return true
}

// returnType renders the declared result. Without one, getters default to any
// and everything else to void.
func returnType(name string, rv *ReturnValue) string {
	if rv == nil {
		if strings.HasPrefix(name, "get") {
			return naming.TypeAny
		}
		return "void"
	}
	if len(rv.Types) > 0 {
		return unionOf(rv.Types)
	}
	if rv.Type != "" {
		return naming.MapType(rv.Type)
	}
	return naming.TypeAny
}
