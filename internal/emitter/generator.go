package emitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidPackage is returned when no package is supplied
	ErrInvalidPackage = errors.New("invalid package")

	// ErrInvalidWorkFolder is returned when the output directory does not exist
	ErrInvalidWorkFolder = errors.New("invalid work folder")
)

// DefaultHeader is the leading comment of every generated file
const DefaultHeader = `/**
 * Generated by dtsgen. Do not edit.
 */
`

// Generator writes a package to one declaration file
type Generator struct {
	registry *Registry
	header   string
}

// NewGenerator creates a generator with the built-in emitters. An empty header
// selects DefaultHeader.
func NewGenerator(header string) *Generator {
	if header == "" {
		header = DefaultHeader
	}
	return &Generator{
		registry: NewRegistry(),
		header:   header,
	}
}

// Render returns the complete file content for the package
func (g *Generator) Render(pkg *model.PackageElement, extension string) (string, error) {
	if pkg == nil {
		return "", ErrInvalidPackage
	}

	em, err := g.registry.GetForExtension(extension)
	if err != nil {
		// extension-less output keeps plain TypeScript syntax
		em, _ = g.registry.Get("typescript")
	}

	body, err := em.Emit(pkg)
	if err != nil {
		return "", fmt.Errorf("failed to emit %s: %w", pkg.Name, err)
	}
	return g.header + body, nil
}

// Do writes <workFolder>/<package name><extension> and returns its path
func (g *Generator) Do(pkg *model.PackageElement, workFolder, extension string) (string, error) {
	if pkg == nil {
		return "", ErrInvalidPackage
	}
	info, err := os.Stat(workFolder)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrInvalidWorkFolder, workFolder)
	}

	content, err := g.Render(pkg, extension)
	if err != nil {
		return "", err
	}

	outFile := filepath.Join(workFolder, pkg.Name+extension)
	if err := os.WriteFile(outFile, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outFile, err)
	}

	log.Info().Str("file", outFile).Int("elements", len(pkg.Elements)).Msg("out file")
	return outFile, nil
}
