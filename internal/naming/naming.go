// Package naming maps foreign identifiers and type spellings to the
// conventions of the generated declarations.
package naming

import "strings"

// Normalize strips a leading "prefix:" qualifier (when the colon is neither the
// first nor the last character) and replaces every dot with an underscore.
//
//	Normalize("tns:Foo.Bar") == "Foo_Bar"
func Normalize(raw string) string {
	name := raw
	if name == "" {
		return name
	}
	if i := strings.Index(name, ":"); i > 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, ".", "_")
}

// Base returns the last dot-separated segment of a qualified name
func Base(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i > 0 {
		return qualified[i+1:]
	}
	return qualified
}

// Mapped target spellings
const (
	TypeAny             = "any"
	TypeAnyArray        = "any[]"
	TypeFunction        = "Function"
	TypeNumber          = "number"
	TypeNumberArray     = "number[]"
	TypeElement         = "HTMLElement"
	TypeElementArray    = "HTMLElement[]"
	TypeMap             = "{ [key: string]: any }"
	TypePromise         = "Promise<any>"
	TypeStringOrPromise = "string | Promise<any>"
)

// fixed lookups, keyed by lower-cased spelling
var typeTable = map[string]string{
	"function":       TypeFunction,
	"int":            TypeNumber,
	"int[]":          TypeNumberArray,
	"float":          TypeNumber,
	"float[]":        TypeNumberArray,
	"domnode":        TypeElement,
	"domref":         TypeElement,
	"element":        TypeElement,
	"domnode[]":      TypeElementArray,
	"domref[]":       TypeElementArray,
	"element[]":      TypeElementArray,
	"map":            TypeMap,
	"object":         TypeAny,
	"*":              TypeAny,
	"array":          TypeAnyArray,
	"promise":        TypePromise,
	"string|promise": TypeStringOrPromise,
	"opromise":       TypeAny,
	"iscroll":        TypeAny,
}

// MapType maps a foreign type spelling to its target spelling. Unmapped names
// pass through unchanged.
func MapType(raw string) string {
	if mapped, ok := typeTable[strings.ToLower(raw)]; ok {
		return mapped
	}
	switch {
	case strings.Contains(raw, "jQuery"):
		return TypeAny
	case strings.Index(raw, ":") > 0, strings.Index(raw, ">") > 0, strings.Index(raw, "<") > 0:
		return TypeAny
	case strings.HasSuffix(strings.ToLower(raw), "callback"):
		return TypeFunction
	}
	return raw
}
