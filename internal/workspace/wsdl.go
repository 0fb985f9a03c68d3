package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/QTest-hq/dtsgen/internal/config"
	"github.com/QTest-hq/dtsgen/internal/emitter"
	"github.com/QTest-hq/dtsgen/internal/wsdl"
	"github.com/QTest-hq/dtsgen/internal/xmltree"
	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/rs/zerolog/log"
)

// WSDLOptions configures a WSDL export
type WSDLOptions struct {
	// Input is a .wsdl file or a directory of them
	Input string
	// Out is the output folder, created when missing
	Out string
	// Typedefs holds extra aliases as "Name=type;Other=type"
	Typedefs string
	// Project supplies extension, namespace, basic types, header and typedefs
	Project *config.ProjectConfig
}

// ExportWSDL generates one declaration file per WSDL document
func ExportWSDL(ctx context.Context, opts WSDLOptions) (*Result, error) {
	proj := project(opts.Project)
	result := newResult()

	if err := ensureDir(opts.Out); err != nil {
		return nil, err
	}

	inputs, err := wsdlInputs(opts.Input)
	if err != nil {
		return nil, err
	}

	typedefs := append(ParseTypedefs(opts.Typedefs), projectTypedefs(proj.Typedefs)...)
	gen := emitter.NewGenerator(proj.Header)
	parser := wsdl.NewParser(proj.BasicTypes...)

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pkg, err := ParseWSDLFile(parser, input)
		if err != nil {
			return nil, err
		}
		pkg.Namespace = proj.Namespace
		for _, t := range typedefs {
			pkg.Add(t)
		}

		outFile, err := gen.Do(pkg, opts.Out, proj.Extension)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", input, err)
		}
		result.Files = append(result.Files, outFile)
	}

	if proj.Check {
		if err := result.check(ctx, result.Files); err != nil {
			return nil, err
		}
	}
	return result.finish(), nil
}

// ParseWSDLFile reads one document. A document without portType is named
// after its file.
func ParseWSDLFile(parser *wsdl.Parser, path string) (*model.PackageElement, error) {
	log.Info().Str("file", path).Msg("wsdl document")

	doc, err := xmltree.ParseFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := parser.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if pkg.Name == "" {
		pkg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return pkg, nil
}

func wsdlInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", input, err)
	}
	if !info.IsDir() {
		if !strings.HasSuffix(input, ".wsdl") {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, input)
		}
		return []string{input}, nil
	}

	names, err := listFiles(input, ".wsdl")
	if err != nil {
		return nil, err
	}
	inputs := make([]string, 0, len(names))
	for _, name := range names {
		inputs = append(inputs, filepath.Join(input, name))
	}
	return inputs, nil
}

// ParseTypedefs turns "A=string;B=number" into aliases. Pairs without a name
// before "=" are ignored.
func ParseTypedefs(raw string) []*model.TypedefElement {
	typedefs := make([]*model.TypedefElement, 0)
	if raw == "" {
		return typedefs
	}
	for _, item := range strings.Split(raw, ";") {
		index := strings.Index(item, "=")
		if index <= 0 {
			continue
		}
		typedefs = append(typedefs, &model.TypedefElement{
			Name:  item[:index],
			Types: []model.ParameterTypeElement{{Name: item[index+1:]}},
		})
	}
	return typedefs
}

func projectTypedefs(defs map[string]string) []*model.TypedefElement {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	typedefs := make([]*model.TypedefElement, 0, len(names))
	for _, name := range names {
		typedefs = append(typedefs, &model.TypedefElement{
			Name:  name,
			Types: []model.ParameterTypeElement{{Name: defs[name]}},
		})
	}
	return typedefs
}
