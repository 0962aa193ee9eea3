package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/xml2rst/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	outputDir string

	// cfg is loaded before any command runs.
	cfg *config.Config
)

// ErrMissingArgument is returned when no XML directory was given.
var ErrMissingArgument = errors.New("missing xml directory argument")

const usageMessage = "Please pass the path to the xml, e.g. xml2rst <path>"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xml2rst <xml-dir>",
	Short: "Generate the Sphinx C API reference from Doxygen XML",
	Long: `xml2rst reads index.xml and Doxyfile.xml from a Doxygen XML output
directory and writes two reStructuredText pages:

  index.rst             top-level table of contents, titled with the SDK version
  reference/c_ref.rst   Breathe directives for every documented C symbol

Only members of the public C headers are listed, and deprecated functions
are left out of the reference page.

Examples:
  # Generate into the current directory
  xml2rst build/release/xml

  # Generate into another Sphinx source tree
  xml2rst build/release/xml --output docs/api/sphinx

  # Regenerate whenever Doxygen rewrites the XML
  xml2rst build/release/xml --watch
`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and maps the outcome to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrMissingArgument):
		fmt.Fprintln(stdout, usageMessage)
		return 0
	}

	fmt.Fprintln(stderr, "Error:", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.xml2rst.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output root for index.rst and reference/ (default from config, \".\")")
}

// loadConfig reads configuration, applies flag overrides and sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("output") {
		loaded.Output.Dir = outputDir
	}
	if verbose {
		loaded.Log.Level = "debug"
	}

	setupLogging(loaded.Log.Level, cmd.ErrOrStderr())
	cfg = loaded
	return nil
}
