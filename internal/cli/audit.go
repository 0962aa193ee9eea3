package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/xml2rst/internal/audit"
	"github.com/mvp-joe/xml2rst/internal/config"
	"github.com/mvp-joe/xml2rst/internal/doxygen"
	"github.com/mvp-joe/xml2rst/internal/headers"
)

// ErrAuditFailed is returned when headers and documentation disagree.
var ErrAuditFailed = errors.New("headers and documentation differ")

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <xml-dir> <include-dir>",
	Short: "Compare the public C headers against the Doxygen index",
	Long: `Audit parses the allowed public headers under <include-dir> and compares the
symbols they declare with the symbols index.xml documents.

It lists symbols declared but undocumented, and documented symbols that no
longer exist in the headers. Deprecated functions are not reported as
undocumented. The command exits non-zero when the two sides differ.

Examples:
  xml2rst audit build/release/xml include/libobsensor/h
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd.Context(), args[0], args[1], cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(ctx context.Context, xmlDir, includeDir string, cfg *config.Config, out io.Writer) error {
	documented, err := doxygen.CollectSymbols(xmlDir)
	if err != nil {
		return err
	}

	scanner, err := headers.NewScanner(headers.Options{
		Patterns:          cfg.Headers.Patterns,
		Allowed:           doxygen.AllowedFileSet(),
		IgnoreIdentifiers: cfg.Headers.IgnoreIdentifiers,
	})
	if err != nil {
		return err
	}

	declared, err := scanner.ScanDir(ctx, includeDir)
	if err != nil {
		return err
	}

	report := audit.Compare(documented, declared, doxygen.ExcludedFunctionSet())
	if err := report.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !report.Clean() {
		return ErrAuditFailed
	}
	return nil
}
