// Package workspace drives export runs over files and folders: it creates the
// output directory, processes inputs one at a time and stops at the first
// error.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/QTest-hq/dtsgen/internal/config"
	"github.com/QTest-hq/dtsgen/internal/emitter"
	"github.com/QTest-hq/dtsgen/internal/ui5"
	"github.com/QTest-hq/dtsgen/internal/validator"
	"github.com/QTest-hq/dtsgen/pkg/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrUnsupportedInput is returned for inputs that are neither a matching file
// nor a directory
var ErrUnsupportedInput = errors.New("unsupported input")

// IndexFile is the references file written after a folder export
const IndexFile = "index.d.ts"

// Result summarizes one export run
type Result struct {
	RunID      string                             `json:"run_id"`
	Files      []string                           `json:"files"`
	Index      string                             `json:"index,omitempty"`
	Problems   map[string][]validator.SyntaxError `json:"problems,omitempty"`
	StartedAt  time.Time                          `json:"started_at"`
	FinishedAt time.Time                          `json:"finished_at"`
}

func newResult() *Result {
	return &Result{
		RunID:     uuid.New().String(),
		Files:     make([]string, 0),
		StartedAt: time.Now(),
	}
}

// HasProblems reports whether any checked file had syntax errors
func (r *Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// check syntax-checks every written file
func (r *Result) check(ctx context.Context, files []string) error {
	v := validator.NewValidator()
	for _, file := range files {
		errs, err := v.CheckFile(ctx, file)
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			continue
		}
		if r.Problems == nil {
			r.Problems = make(map[string][]validator.SyntaxError)
		}
		r.Problems[file] = errs
		log.Warn().Str("file", file).Int("errors", len(errs)).Msg("syntax errors")
	}
	return nil
}

func (r *Result) finish() *Result {
	r.FinishedAt = time.Now()
	log.Info().
		Str("run_id", r.RunID).
		Int("files", len(r.Files)).
		Dur("duration", r.FinishedAt.Sub(r.StartedAt)).
		Msg("export finished")
	return r
}

// project returns cfg, or the defaults when cfg is nil
func project(cfg *config.ProjectConfig) *config.ProjectConfig {
	if cfg == nil {
		return config.DefaultProjectConfig()
	}
	return cfg
}

// ensureDir creates dir and its parents when missing
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// listFiles returns the files of dir whose lower-cased name has suffix, in
// name order
func listFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// WriteReferences writes <outFolder>/index.d.ts referencing every other
// declaration file of the folder and returns its path
func WriteReferences(outFolder, header string) (string, error) {
	if header == "" {
		header = emitter.DefaultHeader
	}
	files, err := listFiles(outFolder, ".d.ts")
	if err != nil {
		return "", err
	}

	var b model.Builder
	b.Write(header)
	references := 0
	for _, name := range files {
		if strings.HasSuffix(strings.ToLower(name), IndexFile) {
			continue
		}
		b.Write(ui5.References("./" + name))
		references++
	}

	indexFile := filepath.Join(outFolder, IndexFile)
	if err := os.WriteFile(indexFile, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", indexFile, err)
	}
	log.Info().Str("file", indexFile).Int("references", references).Msg("out file")
	return indexFile, nil
}
