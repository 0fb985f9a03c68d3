package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/QTest-hq/dtsgen/internal/config"
	"github.com/QTest-hq/dtsgen/internal/workspace"
	"github.com/spf13/cobra"
)

func wsdlCmd() *cobra.Command {
	var (
		namespace  string
		typedefs   string
		extension  string
		projectDir string
		check      bool
	)

	cmd := &cobra.Command{
		Use:     "wsdl-to-ts <wsdl> [out]",
		Aliases: []string{"wsdl"},
		Short:   "Generate declarations from a WSDL file or a folder of them",
		Long: `Generate one declaration file per WSDL document. When <wsdl> is a folder,
every *.wsdl file in it is processed in name order. [out] defaults to the
current directory and is created when missing.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "."
			if len(args) > 1 {
				out = args[1]
			}

			proj, err := config.LoadProjectConfig(projectDir)
			if err != nil {
				return fmt.Errorf("failed to load project config: %w", err)
			}
			proj.Merge(&config.ProjectConfig{
				Extension: extension,
				Namespace: namespace,
				Check:     check,
			})

			result, err := workspace.ExportWSDL(context.Background(), workspace.WSDLOptions{
				Input:    args[0],
				Out:      out,
				Typedefs: typedefs,
				Project:  proj,
			})
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Dotted namespace wrapping the output (e.g. ibas.bobas)")
	cmd.Flags().StringVarP(&typedefs, "typedefs", "t", "", "Extra aliases as \"Name=type;Other=type\"")
	cmd.Flags().StringVarP(&extension, "extension", "e", "", "Output extension (.d.ts or .ts)")
	cmd.Flags().StringVarP(&projectDir, "project", "p", ".", "Directory holding "+config.ProjectFile)
	cmd.Flags().BoolVar(&check, "check", false, "Syntax check the generated files")

	return cmd
}

// printResult lists the written files and fails when a checked file has
// syntax errors
func printResult(cmd *cobra.Command, result *workspace.Result) error {
	w := cmd.OutOrStdout()
	for _, file := range result.Files {
		fmt.Fprintln(w, file)
	}
	if result.Index != "" {
		fmt.Fprintln(w, result.Index)
	}

	if !result.HasProblems() {
		return nil
	}
	files := make([]string, 0, len(result.Problems))
	for file := range result.Problems {
		files = append(files, file)
	}
	sort.Strings(files)
	for _, file := range files {
		fmt.Fprintf(w, "\n%s:\n", file)
		for _, p := range result.Problems[file] {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	return fmt.Errorf("%d generated files have syntax errors", len(result.Problems))
}
