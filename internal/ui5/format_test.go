package ui5

import (
	"testing"

	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/stretchr/testify/assert"
)

func param(name string, optional bool, types ...string) *Parameter {
	p := &Parameter{Name: name, Optional: optional}
	for _, t := range types {
		p.Types = append(p.Types, ParameterType{Value: t})
	}
	return p
}

func TestParameterList(t *testing.T) {
	tests := []struct {
		name   string
		params []*Parameter
		want   string
	}{
		{
			name:   "trailing optional run",
			params: []*Parameter{param("a", false, "string"), param("b", true, "int"), param("c", true, "Map")},
			want:   "a: string, b?: number, c?: { [key: string]: any }",
		},
		{
			name:   "later required blocks optional",
			params: []*Parameter{param("a", true, "string"), param("b", false, "string"), param("c", true, "string")},
			want:   "a: string, b: string, c?: string",
		},
		{
			name:   "union types",
			params: []*Parameter{param("v", false, "string", "int", "sap.ui.core.ID")},
			want:   "v: string | number | sap.ui.core.ID",
		},
		{
			name:   "placeholder names use the raw index",
			params: []*Parameter{param("x", false, "string"), param("a&b", false, "string"), param("c;d", false, "string")},
			want:   "x: string, arg1: string, arg2: string",
		},
		{
			name: "nested parameters are hidden but count for optionality",
			params: []*Parameter{
				param("settings", true, "object"),
				{Name: "settings.id", Depth: 1, Types: []ParameterType{{Value: "string"}}},
			},
			want: "settings: any",
		},
		{
			name:   "untyped parameter",
			params: []*Parameter{{Name: "raw"}, {Name: "single", Type: "float"}},
			want:   "raw: any, single: number",
		},
		{
			name: "none",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parameterList(tt.params))
		})
	}
}

func TestReturnType(t *testing.T) {
	tests := []struct {
		name   string
		method string
		rv     *ReturnValue
		want   string
	}{
		{name: "getter without return", method: "getValue", want: "any"},
		{name: "other without return", method: "fire", want: "void"},
		{name: "single type", method: "x", rv: &ReturnValue{Type: "int"}, want: "number"},
		{name: "union wins", method: "x", rv: &ReturnValue{Type: "int", Types: []ParameterType{{Value: "string"}, {Value: "Promise"}}}, want: "string | Promise<any>"},
		{name: "empty declared", method: "x", rv: &ReturnValue{}, want: "any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, returnType(tt.method, tt.rv))
		})
	}
}

func TestVisibilities(t *testing.T) {
	assert.Equal(t, "", visibilities(""))
	assert.Equal(t, "", visibilities(VisibilityPublic))
	assert.Equal(t, "private", visibilities(VisibilityRestricted))
	assert.Equal(t, "protected", visibilities(VisibilityProtected))
}

func TestFormatHelpers(t *testing.T) {
	var b model.Builder
	comments(&b, "")
	comments(&b, "text")
	namespaces(&b, "ns", "declare")
	namespaces(&b, "inner", "")
	enumValue(&b, "Accept")
	classes(&b, "C", "Base", []string{"I1", "I2"}, true)
	interfaces(&b, "I", nil)
	ends(&b)

	want := "/**\n */\n" +
		"/**\n * text\n */\n" +
		"declare namespace ns {\n" +
		"namespace inner {\n" +
		"Accept = \"Accept\",\n" +
		"export abstract class C extends Base implements I1, I2 {\n" +
		"export interface I {\n" +
		"}\n"
	assert.Equal(t, want, b.String())

	assert.Equal(t, "/// <reference path=\"./sap.m.d.ts\" />\n", References("./sap.m.d.ts"))
}
