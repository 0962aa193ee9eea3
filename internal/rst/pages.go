// Package rst renders the Sphinx pages that document the C API: the
// top-level index page and the Breathe-driven C reference page.
package rst

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/xml2rst/internal/doxygen"
)

// Project is the Breathe project name every directive is bound to.
const Project = "OrbbecSdk"

// Toctree lists the site sections linked from the index page, in order.
var Toctree = []string{
	"summary/index",
	"env/index",
	"sample/index",
	"knowledge/index",
	"support/index",
	"reference/index",
	"orbbecviewer/index",
}

// Heading layout of the reference page. Titles are left-aligned in a
// 43-column field and underlined with 44 adornment characters.
const (
	headingWidth   = 43
	adornmentWidth = 44
)

// section pairs a reference page heading with the symbols listed under it.
type section struct {
	title string
	kind  doxygen.Kind
}

var sections = []section{
	{"Macros", doxygen.KindMacro},
	{"Structures", doxygen.KindStruct},
	{"Enumerations", doxygen.KindEnum},
	{"Typedefs", doxygen.KindTypedef},
	{"Functions", doxygen.KindFunction},
}

// RenderIndexPage writes the index page for version to w.
func RenderIndexPage(w io.Writer, version string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s v%s\n================\n\n", Project, version)
	bw.WriteString(".. toctree::\n")
	bw.WriteString("   :maxdepth: 3\n\n")
	for _, entry := range Toctree {
		fmt.Fprintf(bw, "   %s\n", entry)
	}

	return bw.Flush()
}

// RenderReferencePage writes the C reference page to w. Functions named in
// excluded are left out; every other collected symbol is listed.
func RenderReferencePage(w io.Writer, symbols doxygen.Symbols, excluded doxygen.NameSet) error {
	bw := bufio.NewWriter(w)

	writeHeading(bw, "C Reference", '=')
	for _, s := range sections {
		writeHeading(bw, s.title, '-')
		for _, name := range symbols.List(s.kind) {
			if s.kind == doxygen.KindFunction && excluded.Contains(name) {
				continue
			}
			writeDirective(bw, s.kind, name)
		}
	}

	return bw.Flush()
}

func writeHeading(w *bufio.Writer, title string, adornment byte) {
	fmt.Fprintf(w, "%-*s\n%s\n", headingWidth, title, strings.Repeat(string(adornment), adornmentWidth))
}

// writeDirective emits one Breathe directive, e.g. ".. doxygenfunction:: name".
func writeDirective(w *bufio.Writer, kind doxygen.Kind, name string) {
	fmt.Fprintf(w, ".. doxygen%s:: %s\n   :project: %s\n\n", kind, name, Project)
}
