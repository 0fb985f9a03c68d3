package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/QTest-hq/dtsgen/internal/fetch"
	"github.com/QTest-hq/dtsgen/internal/ui5"
	"github.com/rs/zerolog/log"
)

// UI5Options configures a UI5 export
type UI5Options struct {
	// Data is "v<version>", a library .json file or a folder of them
	Data string
	// Out is the output folder, created when missing
	Out    string
	Header string
	Check  bool
	// Downloader serves version inputs
	Downloader *fetch.Downloader
}

// ExportUI5 exports UI5 library documents. Folder and version inputs also get
// an index.d.ts referencing every generated file.
func ExportUI5(ctx context.Context, opts UI5Options) (*Result, error) {
	result := newResult()

	switch {
	case fetch.IsVersion(opts.Data):
		if opts.Downloader == nil {
			return nil, fmt.Errorf("%w: no downloader for %s", ErrUnsupportedInput, opts.Data)
		}
		version, _ := fetch.ParseVersion(opts.Data)
		folder, err := opts.Downloader.Download(ctx, version)
		if err != nil {
			return nil, err
		}
		if err := exportFolder(ctx, folder, opts, result); err != nil {
			return nil, err
		}
	case strings.HasSuffix(strings.ToLower(opts.Data), ".json"):
		if err := ensureDir(opts.Out); err != nil {
			return nil, err
		}
		outFile, err := exportFile(opts.Data, opts)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, outFile)
	default:
		if err := exportFolder(ctx, opts.Data, opts, result); err != nil {
			return nil, err
		}
	}

	if opts.Check {
		if err := result.check(ctx, result.Files); err != nil {
			return nil, err
		}
	}
	return result.finish(), nil
}

func exportFile(path string, opts UI5Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Info().Str("file", path).Msg("data")

	outFile, err := ui5.NewExporter(opts.Header).Run(data, opts.Out)
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", path, err)
	}
	return outFile, nil
}

// exportFolder exports every .json of folder except the api index, one at a
// time, then writes the references file
func exportFolder(ctx context.Context, folder string, opts UI5Options, result *Result) error {
	names, err := listFiles(folder, ".json")
	if err != nil {
		return err
	}
	if err := ensureDir(opts.Out); err != nil {
		return err
	}

	for _, name := range names {
		if strings.HasSuffix(strings.ToLower(name), fetch.IndexFile) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		outFile, err := exportFile(filepath.Join(folder, name), opts)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, outFile)
	}

	index, err := WriteReferences(opts.Out, opts.Header)
	if err != nil {
		return err
	}
	result.Index = index
	return nil
}
