// Package audit cross-checks the symbols Doxygen documented against the
// symbols the public headers declare.
package audit

import (
	"fmt"
	"io"

	"github.com/mvp-joe/xml2rst/internal/doxygen"
)

// Report lists, per kind, the names found on only one side.
type Report struct {
	// Undocumented are declared in the headers but absent from index.xml.
	Undocumented doxygen.Symbols
	// Orphaned appear in index.xml but are not declared in the headers.
	Orphaned doxygen.Symbols
}

// Clean reports whether both sides agree.
func (r *Report) Clean() bool {
	return r.Undocumented.Len() == 0 && r.Orphaned.Len() == 0
}

// Compare diffs documented against declared, kind by kind. Names keep the
// order of their source list and are reported once. Excluded functions are
// never reported as undocumented.
func Compare(documented, declared doxygen.Symbols, excluded doxygen.NameSet) *Report {
	report := &Report{}

	for _, kind := range doxygen.Kinds {
		docSet := doxygen.NewNameSet(documented.List(kind)...)
		declSet := doxygen.NewNameSet(declared.List(kind)...)

		for _, name := range unique(declared.List(kind)) {
			if docSet.Contains(name) {
				continue
			}
			if kind == doxygen.KindFunction && excluded.Contains(name) {
				continue
			}
			report.Undocumented.Add(kind, name)
		}

		for _, name := range unique(documented.List(kind)) {
			if !declSet.Contains(name) {
				report.Orphaned.Add(kind, name)
			}
		}
	}

	return report
}

func unique(names doxygen.SymbolList) doxygen.SymbolList {
	seen := make(doxygen.NameSet, len(names))
	var out doxygen.SymbolList
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Write prints the report in a human-readable form.
func (r *Report) Write(w io.Writer) error {
	if r.Clean() {
		_, err := fmt.Fprintln(w, "✓ Headers and documentation agree")
		return err
	}

	if err := writeGroup(w, "Undocumented (declared in headers, missing from index.xml)", r.Undocumented); err != nil {
		return err
	}
	return writeGroup(w, "Orphaned (in index.xml, not declared in headers)", r.Orphaned)
}

func writeGroup(w io.Writer, title string, symbols doxygen.Symbols) error {
	if symbols.Len() == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s: %d\n", title, symbols.Len()); err != nil {
		return err
	}
	for _, kind := range doxygen.Kinds {
		for _, name := range symbols.List(kind) {
			if _, err := fmt.Fprintf(w, "  %-8s %s\n", kind, name); err != nil {
				return err
			}
		}
	}
	return nil
}
