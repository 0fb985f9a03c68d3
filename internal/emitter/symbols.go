package emitter

import "github.com/QTest-hq/dtsgen/pkg/model"

// SymbolTable maps declared names to their elements. It is rebuilt for every
// emission run and only used for lookahead.
type SymbolTable map[string]model.Element

// NewSymbolTable indexes every element of the package by simple name and by
// dotted path below the package
func NewSymbolTable(pkg *model.PackageElement) SymbolTable {
	table := make(SymbolTable)
	if pkg != nil {
		table.index(pkg.Elements, "")
	}
	return table
}

func (s SymbolTable) index(elements []model.Element, prefix string) {
	for _, el := range elements {
		name := el.ElementName()
		if _, ok := s[name]; !ok {
			s[name] = el
		}
		if prefix != "" {
			s[prefix+name] = el
		}
		if ns, ok := el.(*model.NamespaceElement); ok {
			s.index(ns.Elements, prefix+name+".")
		}
	}
}

// Has reports whether name is declared
func (s SymbolTable) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Known filters names down to the declared ones, preserving order
func (s SymbolTable) Known(names []string) []string {
	known := make([]string, 0, len(names))
	for _, name := range names {
		if s.Has(name) {
			known = append(known, name)
		}
	}
	return known
}
