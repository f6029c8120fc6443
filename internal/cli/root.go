// Package cli implements the pdfdiff command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/reader"
)

// Exit statuses
const (
	ExitEqual     = 0
	ExitDifferent = 1
	ExitError     = 2
)

// version is set at build time with -ldflags "-X ...cli.version=..."
var version = "dev"

var cfgFile string

// errDifferent is returned by a comparison command when the documents
// differ. It is not printed; it only selects the exit status.
var errDifferent = errors.New("documents differ")

// newEngine builds the PDF engine. Tests replace it.
var newEngine = func(opts reader.Options) (compare.Engine, error) {
	return reader.NewEngine(opts)
}

var rootCmd = &cobra.Command{
	Use:   "pdfdiff",
	Short: "Compare PDF documents by text or by rendering",
	Long: `pdfdiff decides whether two PDF files are equivalent.

The text command compares the extracted text of every page, or of selected
regions. The images command renders every page at a low resolution and
compares pixel colors within configurable thresholds.

Exit status is 0 when the documents are equal, 1 when they differ and 2
when they could not be compared.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, TOML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("json", false, "print the result as JSON")
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return ExitEqual
	case errors.Is(err, errDifferent):
		return ExitDifferent
	default:
		rootCmd.PrintErrln("Error:", err)
		return ExitError
	}
}
