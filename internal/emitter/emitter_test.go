package emitter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{"dts", "typescript"}, r.List())

	e, err := r.Get("typescript")
	require.NoError(t, err)
	assert.Equal(t, ".ts", e.FileExtension())
	assert.Equal(t, "typescript", e.Language())

	_, err = r.Get("cobol")
	assert.Error(t, err)
}

func TestRegistry_GetForExtension(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		ext     string
		want    string
		wantErr bool
	}{
		{ext: ".d.ts", want: "dts"},
		{ext: ".ts", want: "typescript"},
		{ext: "svc.d.ts", want: "dts"},
		{ext: ".js", wantErr: true},
		{ext: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			e, err := r.GetForExtension(tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
		})
	}
}

// svcPackage mirrors the output of parsing the minimal Svc service document
func svcPackage() *model.PackageElement {
	pkg := model.NewPackage("Svc")

	resp := &model.InterfaceElement{Name: "GetResp"}
	resp.Properties = append(resp.Properties, &model.PropertyElement{
		Name:     "value",
		Optional: true,
		Types:    []model.ParameterTypeElement{{Name: "string"}},
	})

	completed := model.NewFnParameter("completed")
	completed.Parameters = append(completed.Parameters, &model.ParameterElement{
		Name:  "output",
		Types: []model.ParameterTypeElement{{Name: "GetResp"}},
	})
	client := &model.InterfaceElement{Name: "ServiceClient"}
	client.Methods = append(client.Methods, &model.FunctionElement{
		Name: "Get",
		Parameters: []*model.ParameterElement{
			{Name: "input", Types: []model.ParameterTypeElement{{Name: "GetMsg"}}},
			completed,
		},
	})

	pkg.Add(resp, client)
	return pkg
}

func TestDeclarationEmitter_RoundTrip(t *testing.T) {
	out, err := NewDeclarationEmitter().Emit(svcPackage())
	require.NoError(t, err)

	want := `declare namespace svc {
    interface GetResp {
        value?: string;
    }

    interface ServiceClient {
        Get(input: GetMsg, completed: (output: GetResp) => void): void;
    }

}
`
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "export")
}

func TestTypeScriptEmitter_ExportsAndNamespaceChain(t *testing.T) {
	pkg := model.NewPackage("Svc")
	pkg.Namespace = "ibas.bobas"
	pkg.Add(&model.TypedefElement{Name: "Id", Types: []model.ParameterTypeElement{{Name: "string"}}})

	out, err := NewTypeScriptEmitter().Emit(pkg)
	require.NoError(t, err)

	want := `export declare namespace ibas {
    export namespace bobas {
        export namespace svc {
            export type Id = string;

        }
    }
}
`
	assert.Equal(t, want, out)
}

func TestEmit_NilPackage(t *testing.T) {
	_, err := NewTypeScriptEmitter().Emit(nil)
	assert.ErrorIs(t, err, ErrInvalidPackage)
}

func TestEmit_DeduplicatesByKindAndName(t *testing.T) {
	pkg := model.NewPackage("svc")
	pkg.Add(
		&model.TypedefElement{Name: "Code", Types: []model.ParameterTypeElement{{Name: `"A"`}, {Name: `"B"`}}},
		&model.TypedefElement{Name: "B", Types: []model.ParameterTypeElement{{Name: "number"}}},
		&model.TypedefElement{Name: "Code", Types: []model.ParameterTypeElement{{Name: "string"}}},
		&model.TypedefElement{Name: "B", Types: []model.ParameterTypeElement{{Name: "number"}}},
		// same name, different kind: kept
		&model.InterfaceElement{Name: "Code"},
	)

	out, err := NewDeclarationEmitter().Emit(pkg)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "type Code ="))
	assert.Contains(t, out, `    type Code = "A" | "B";`)
	assert.NotContains(t, out, "type Code = string;")
	assert.Equal(t, 1, strings.Count(out, "type B = number;"))
	assert.Equal(t, 1, strings.Count(out, "interface Code {"))
	assert.Less(t, strings.Index(out, "type Code ="), strings.Index(out, "type B = number;"))
	assert.Less(t, strings.Index(out, "type B = number;"), strings.Index(out, "interface Code {"))
}

func TestEmit_ClassMemberOrderAndImplements(t *testing.T) {
	cls := &model.ClassElement{
		Name:       "Order",
		Abstract:   true,
		Extends:    "Base",
		Implements: []string{"IOrder", "Missing"},
		Constructors: []*model.ConstructorElement{
			{Parameters: []*model.ParameterElement{{Name: "id", Types: []model.ParameterTypeElement{{Name: "number"}}}}},
		},
		Properties: []*model.PropertyElement{
			{Name: "id", Final: true, Types: []model.ParameterTypeElement{{Name: "number"}}},
			{Name: "lines", Array: true, Visibility: model.Protected, Types: []model.ParameterTypeElement{{Name: "Line"}}},
		},
		Methods: []*model.FunctionElement{
			{Name: "total", Returns: []model.ParameterTypeElement{{Name: "number"}}},
			{Name: "create", Static: true, Returns: []model.ParameterTypeElement{{Name: "Order"}}},
			{Name: "hidden", Static: true, Visibility: model.Private},
		},
	}

	pkg := model.NewPackage("")
	pkg.Namespace = "shop"
	pkg.Add(&model.InterfaceElement{Name: "IOrder"}, cls)

	out, err := NewDeclarationEmitter().Emit(pkg)
	require.NoError(t, err)

	assert.Contains(t, out, "    abstract class Order extends Base implements IOrder {\n")
	assert.NotContains(t, out, "Missing")

	order := []string{
		"        static create(): Order;",
		"        constructor(id: number);",
		"        readonly id: number;",
		"        protected lines: Line[];",
		"        total(): number;",
		"        private static hidden(): void;",
	}
	last := -1
	for _, line := range order {
		idx := strings.Index(out, line+"\n")
		require.NotEqual(t, -1, idx, "missing %q in\n%s", line, out)
		assert.Greater(t, idx, last, "out of order: %q", line)
		last = idx
	}
}

func TestEmit_EnumAndUnions(t *testing.T) {
	pkg := model.NewPackage("")
	pkg.Namespace = "ns"
	pkg.Add(
		&model.EnumElement{Name: "Status", Values: []model.EnumValueElement{
			{Name: "OPEN", Value: "0"},
			{Name: "CLOSED"},
		}},
		&model.TypedefElement{Name: "Mode", Types: []model.ParameterTypeElement{{Name: `"A"`}, {Name: `"B"`}}},
		&model.TypedefElement{Name: "Unknown"},
	)

	out, err := NewTypeScriptEmitter().Emit(pkg)
	require.NoError(t, err)

	assert.Contains(t, out, "    export enum Status {\n        OPEN = 0,\n        CLOSED,\n    }\n")
	assert.Contains(t, out, `    export type Mode = "A" | "B";`)
	assert.Contains(t, out, "    export type Unknown = any;")
}

func TestEmit_CallbackParameters(t *testing.T) {
	done := model.NewFnParameter("done")
	done.Optional = true
	done.Types = []model.ParameterTypeElement{{Name: "boolean"}}
	done.Parameters = append(done.Parameters,
		&model.ParameterElement{Name: "ok", Types: []model.ParameterTypeElement{{Name: "Result"}}},
		&model.ParameterElement{Name: "err", Optional: true},
	)

	iface := &model.InterfaceElement{Name: "Api", Extends: []string{"A", "B"}}
	iface.Methods = append(iface.Methods, &model.FunctionElement{
		Name:       "run",
		Parameters: []*model.ParameterElement{done},
		Returns:    []model.ParameterTypeElement{{Name: "string"}, {Name: "number"}},
	})

	pkg := model.NewPackage("")
	pkg.Namespace = "ns"
	pkg.Add(iface)

	out, err := NewDeclarationEmitter().Emit(pkg)
	require.NoError(t, err)

	assert.Contains(t, out, "    interface Api extends A, B {\n")
	assert.Contains(t, out, "        run(done?: (ok: Result, err?: any) => boolean): string | number;\n")
}

func TestSymbolTable(t *testing.T) {
	inner := model.NewNamespace("inner")
	inner.Elements = append(inner.Elements, &model.InterfaceElement{Name: "Deep"})

	pkg := model.NewPackage("p")
	pkg.Add(&model.InterfaceElement{Name: "Top"}, inner)

	table := NewSymbolTable(pkg)
	assert.True(t, table.Has("Top"))
	assert.True(t, table.Has("Deep"))
	assert.True(t, table.Has("inner.Deep"))
	assert.False(t, table.Has("Nope"))
	assert.Equal(t, []string{"Deep", "Top"}, table.Known([]string{"Deep", "Nope", "Top"}))

	assert.Empty(t, NewSymbolTable(nil))
}

func TestGenerator_Do(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator("")

	outFile, err := g.Do(svcPackage(), dir, ".d.ts")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Svc.d.ts"), outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, DefaultHeader))
	assert.Contains(t, content, "declare namespace svc {")
}

func TestGenerator_DoCustomHeaderAndUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator("// custom\n")

	outFile, err := g.Do(svcPackage(), dir, ".txt")
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// custom\nexport declare namespace svc {"))
}

func TestGenerator_DoErrors(t *testing.T) {
	g := NewGenerator("")

	_, err := g.Do(nil, t.TempDir(), ".d.ts")
	assert.ErrorIs(t, err, ErrInvalidPackage)

	_, err = g.Do(svcPackage(), filepath.Join(t.TempDir(), "missing"), ".d.ts")
	assert.ErrorIs(t, err, ErrInvalidWorkFolder)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = g.Do(svcPackage(), file, ".d.ts")
	assert.ErrorIs(t, err, ErrInvalidWorkFolder)
}
