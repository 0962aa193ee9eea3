// Package headers reads the public C headers with tree-sitter and lists the
// symbols they declare, so they can be checked against the Doxygen output.
package headers

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"github.com/phuslu/log"
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/mvp-joe/xml2rst/internal/doxygen"
)

// Options configures a Scanner.
type Options struct {
	// Patterns are glob patterns, relative to the scanned root, selecting
	// header files. Defaults to "**/*.h".
	Patterns []string

	// Allowed restricts scanning to headers with these base names.
	// A nil set scans every matching header.
	Allowed doxygen.NameSet

	// IgnoreIdentifiers are blanked out before parsing. Export and
	// deprecation macros in front of prototypes confuse the C grammar.
	IgnoreIdentifiers []string
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Scanner discovers and parses C headers.
type Scanner struct {
	patterns []compiledPattern
	allowed  doxygen.NameSet
	ignore   *regexp.Regexp
	language *sitter.Language
}

// NewScanner compiles the options into a Scanner.
func NewScanner(opts Options) (*Scanner, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"**/*.h"}
	}

	s := &Scanner{
		allowed:  opts.Allowed,
		language: sitter.NewLanguage(c.Language()),
	}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid header pattern %q: %w", pattern, err)
		}
		s.patterns = append(s.patterns, compiledPattern{pattern: pattern, glob: g})
	}

	if len(opts.IgnoreIdentifiers) > 0 {
		quoted := make([]string, len(opts.IgnoreIdentifiers))
		for i, id := range opts.IgnoreIdentifiers {
			quoted[i] = regexp.QuoteMeta(id)
		}
		s.ignore = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	}

	return s, nil
}

// Discover walks root and returns the headers to scan in lexical order.
func (s *Scanner) Discover(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if !s.matchesAnyPattern(relPath) {
			return nil
		}
		if s.allowed != nil && !s.allowed.Contains(d.Name()) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// matchesAnyPattern checks if a path matches any of the scanner's patterns.
// Root-level files also match patterns with a leading "**/".
func (s *Scanner) matchesAnyPattern(path string) bool {
	for _, cp := range s.patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	if !strings.Contains(path, "/") {
		for _, cp := range s.patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if g, err := glob.Compile(simplified, '/'); err == nil && g.Match(path) {
					return true
				}
			}
		}
	}

	return false
}

// ScanDir discovers the headers under root and merges their symbols in
// discovery order.
func (s *Scanner) ScanDir(ctx context.Context, root string) (doxygen.Symbols, error) {
	files, err := s.Discover(root)
	if err != nil {
		return doxygen.Symbols{}, fmt.Errorf("failed to discover headers in %s: %w", root, err)
	}

	var all doxygen.Symbols
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return doxygen.Symbols{}, err
		}

		symbols, err := s.ParseFile(ctx, file)
		if err != nil {
			return doxygen.Symbols{}, err
		}
		for _, kind := range doxygen.Kinds {
			for _, name := range symbols.List(kind) {
				all.Add(kind, name)
			}
		}

		log.Debug().Str("header", file).Int("symbols", symbols.Len()).Msg("scanned header")
	}

	return all, nil
}

// ParseFile parses one header file.
func (s *Scanner) ParseFile(ctx context.Context, path string) (doxygen.Symbols, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return doxygen.Symbols{}, fmt.Errorf("failed to read header %s: %w", path, err)
	}

	symbols, err := s.ParseSource(ctx, source)
	if err != nil {
		return doxygen.Symbols{}, fmt.Errorf("failed to parse header %s: %w", path, err)
	}
	return symbols, nil
}

// ParseSource parses C header source and returns the declared symbols in
// source order.
func (s *Scanner) ParseSource(ctx context.Context, source []byte) (doxygen.Symbols, error) {
	if s.ignore != nil {
		source = s.blankIgnored(source)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(s.language); err != nil {
		return doxygen.Symbols{}, err
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return doxygen.Symbols{}, fmt.Errorf("tree-sitter returned no tree")
	}
	defer tree.Close()

	var symbols doxygen.Symbols
	collect(tree.RootNode(), source, &symbols)
	return symbols, nil
}

// blankIgnored replaces ignored identifiers with spaces of the same length,
// which keeps byte offsets intact. Preprocessor directives, including their
// continuation lines, are left alone so the macros keep their own
// definitions.
func (s *Scanner) blankIgnored(source []byte) []byte {
	out := make([]byte, 0, len(source))
	inDirective := false

	for len(source) > 0 {
		line := source
		if i := bytes.IndexByte(source, '\n'); i >= 0 {
			line = source[:i+1]
		}
		source = source[len(line):]

		if !inDirective && bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("#")) {
			inDirective = true
		}
		if inDirective {
			out = append(out, line...)
			inDirective = bytes.HasSuffix(bytes.TrimRight(line, "\r\n"), []byte("\\"))
			continue
		}

		out = append(out, s.ignore.ReplaceAllFunc(line, func(m []byte) []byte {
			return bytes.Repeat([]byte(" "), len(m))
		})...)
	}
	return out
}
