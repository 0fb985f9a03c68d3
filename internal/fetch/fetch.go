// Package fetch downloads UI5 API documentation for a released version
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/QTest-hq/dtsgen/internal/ui5"
	"github.com/hashicorp/go-getter"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

var (
	// ErrInvalidVersion is returned for version arguments that are not "v<semver>"
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidIndex is returned when the api index carries no library
	ErrInvalidIndex = errors.New("invalid index data")
)

// IndexFile is the name of the downloaded api index
const IndexFile = "api-index.json"

// Library is one library document to download
type Library struct {
	Name string
	URL  string
}

// FileName is the local name of the library document
func (l Library) FileName() string {
	return "api-" + l.Name + ".json"
}

// Downloader fetches the api index of a version and every library it names
type Downloader struct {
	IndexURL string
	APIURL   string
	CacheDir string
	Workers  int
}

// ParseVersion accepts "v1.2.3" (or "V1.2.3") and returns "1.2.3"
func ParseVersion(data string) (string, error) {
	if len(data) < 2 || !strings.EqualFold(data[:1], "v") {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, data)
	}
	version := data[1:]
	if _, err := semver.NewVersion(version); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidVersion, data, err)
	}
	return version, nil
}

// IsVersion reports whether data names a version rather than a path
func IsVersion(data string) bool {
	_, err := ParseVersion(data)
	return err == nil
}

// Download fetches everything for version into <CacheDir>/<version> and
// returns that folder
func (d *Downloader) Download(ctx context.Context, version string) (string, error) {
	folder := filepath.Join(d.CacheDir, version)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", folder, err)
	}

	indexFile := filepath.Join(folder, IndexFile)
	if err := fetchFile(ctx, expand(d.IndexURL, version, ""), indexFile); err != nil {
		return "", err
	}

	data, err := os.ReadFile(indexFile)
	if err != nil {
		return "", fmt.Errorf("failed to read index: %w", err)
	}
	index, err := ui5.ParseAPI(data)
	if err != nil {
		return "", err
	}
	if index.Library == "" {
		return "", ErrInvalidIndex
	}
	log.Info().Str("file", indexFile).Msg("api")

	libs := CollectLibraries(index.Symbols, expand(d.APIURL, version, ""))

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	p := pool.New().WithContext(ctx).WithMaxGoroutines(workers).WithCancelOnError().WithFirstError()
	for _, lib := range libs {
		p.Go(func(ctx context.Context) error {
			file := filepath.Join(folder, lib.FileName())
			if err := fetchFile(ctx, lib.URL, file); err != nil {
				return err
			}
			log.Info().Str("library", lib.Name).Str("file", file).Msg("api")
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return "", err
	}

	return folder, nil
}

// CollectLibraries lists the libraries referenced by non-deprecated,
// non-restricted symbols in first-seen order. apiURL may still contain the
// {LIBRARY} placeholder.
func CollectLibraries(symbols []*ui5.Symbol, apiURL string) []Library {
	seen := make(map[string]bool)
	libs := make([]Library, 0)

	var visit func(s *ui5.Symbol)
	visit = func(s *ui5.Symbol) {
		if s == nil || s.Lib == "" {
			return
		}
		if s.Deprecated.Flag || s.Visibility == ui5.VisibilityRestricted {
			return
		}
		if !seen[s.Lib] {
			seen[s.Lib] = true
			libs = append(libs, Library{
				Name: s.Lib,
				URL:  expand(apiURL, "", strings.ReplaceAll(s.Lib, ".", "/")),
			})
		}
		for _, node := range s.Nodes {
			visit(node)
		}
	}
	for _, s := range symbols {
		visit(s)
	}
	return libs
}

func expand(template, version, library string) string {
	if version != "" {
		template = strings.ReplaceAll(template, "{VERSION}", version)
	}
	if library != "" {
		template = strings.ReplaceAll(template, "{LIBRARY}", library)
	}
	return template
}

func fetchFile(ctx context.Context, src, dst string) error {
	log.Debug().Str("url", src).Msg("downloading")

	// a leftover file would be treated as a partial download
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", dst, err)
	}

	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Mode:    getter.ClientModeFile,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("failed to download %s: %w", src, err)
	}
	return nil
}
