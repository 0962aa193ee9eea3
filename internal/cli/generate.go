package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/xml2rst/internal/config"
	"github.com/mvp-joe/xml2rst/internal/doxygen"
	"github.com/mvp-joe/xml2rst/internal/rst"
	"github.com/mvp-joe/xml2rst/internal/watcher"
)

var watchFlag bool

func init() {
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Regenerate whenever index.xml or Doxyfile.xml changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrMissingArgument
	}
	xmlDir := args[0]

	if !watchFlag {
		return generate(xmlDir, cfg, cmd.OutOrStdout())
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return watchAndGenerate(ctx, xmlDir, cfg, cmd.OutOrStdout())
}

// generate runs one full extraction and writes both pages.
func generate(xmlDir string, cfg *config.Config, out io.Writer) error {
	result, err := doxygen.Extract(xmlDir)
	if err != nil {
		return err
	}

	renderer := rst.NewRenderer(cfg.Output.Dir, rst.Options{
		Atomic:     cfg.Output.Atomic,
		CreateDirs: cfg.Output.CreateDirs,
	})
	if err := renderer.Render(result, doxygen.ExcludedFunctionSet()); err != nil {
		return err
	}

	log.Info().
		Str("version", result.Version).
		Int("symbols", result.Symbols.Len()).
		Msg("generated reference")

	fmt.Fprintf(out, "Generated %s and %s\n", renderer.IndexPath(), renderer.ReferencePath())
	return nil
}

// watchAndGenerate generates once, then again after every change to the
// Doxygen XML until ctx is cancelled. Failed runs are logged, not fatal.
func watchAndGenerate(ctx context.Context, xmlDir string, cfg *config.Config, out io.Writer) error {
	if err := generate(xmlDir, cfg, out); err != nil {
		log.Error().Err(err).Msg("initial generation failed")
	}

	fw, err := watcher.NewFileWatcher(xmlDir, []string{doxygen.IndexFile, doxygen.DoxyfileFile}, cfg.Watch.Debounce())
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", xmlDir, err)
	}
	defer fw.Stop()

	err = fw.Start(ctx, func(files []string) {
		log.Info().Strs("changed", files).Msg("doxygen output changed")
		if err := generate(xmlDir, cfg, out); err != nil {
			log.Error().Err(err).Msg("generation failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.Info().Str("dir", xmlDir).Msg("watching for changes (Ctrl+C to stop)")
	<-ctx.Done()
	return nil
}
