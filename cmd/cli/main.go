package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "dtsgen",
		Short: "dtsgen - TypeScript declarations from WSDL and UI5 API documents",
		Long: `dtsgen generates TypeScript declaration files from WSDL service
descriptions and from UI5 library API documents.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log every emitted element")

	// Add subcommands
	rootCmd.AddCommand(wsdlCmd())
	rootCmd.AddCommand(ui5Cmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(initCmd())

	return rootCmd
}
