package main

import (
	"context"
	"fmt"

	"github.com/QTest-hq/dtsgen/internal/validator"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Syntax check declaration files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := validator.NewValidator()
			w := cmd.OutOrStdout()

			failed := 0
			for _, file := range args {
				problems, err := v.CheckFile(context.Background(), file)
				if err != nil {
					return err
				}
				if len(problems) == 0 {
					fmt.Fprintf(w, "ok   %s\n", file)
					continue
				}

				failed++
				fmt.Fprintf(w, "FAIL %s\n", file)
				for _, p := range problems {
					fmt.Fprintf(w, "  %s\n", p)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files have syntax errors", failed, len(args))
			}
			return nil
		},
	}

	return cmd
}
