package doxygen

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
)

// IndexFile is the name of the Doxygen compound index.
const IndexFile = "index.xml"

// indexDoc mirrors the parts of Doxygen's index.xml that are read.
type indexDoc struct {
	XMLName   xml.Name   `xml:"doxygenindex"`
	Compounds []compound `xml:"compound"`
}

type compound struct {
	Kind    string   `xml:"kind,attr"`
	Name    *string  `xml:"name"`
	Members []member `xml:"member"`
}

type member struct {
	Kind string  `xml:"kind,attr"`
	Name *string `xml:"name"`
}

// memberKinds maps the member kinds collected from allowed files.
var memberKinds = map[string]Kind{
	"function": KindFunction,
	"typedef":  KindTypedef,
	"enum":     KindEnum,
	"define":   KindMacro,
}

// CollectSymbols reads <dir>/index.xml and returns the symbols of every
// allowed file compound plus every struct compound.
func CollectSymbols(dir string) (Symbols, error) {
	path := filepath.Join(dir, IndexFile)

	f, err := os.Open(path)
	if err != nil {
		return Symbols{}, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	symbols, err := ParseIndex(f, AllowedFileSet())
	if err != nil {
		return Symbols{}, withPath(err, path)
	}

	log.Debug().
		Str("path", path).
		Int("macros", len(symbols.Macros)).
		Int("structs", len(symbols.Structs)).
		Int("enums", len(symbols.Enums)).
		Int("typedefs", len(symbols.Typedefs)).
		Int("functions", len(symbols.Functions)).
		Msg("collected symbols")

	return symbols, nil
}

// ParseIndex decodes a Doxygen compound index from r. Members are only
// collected from file compounds whose name is in allowed; struct compounds
// are always collected. Names keep document order.
func ParseIndex(r io.Reader, allowed NameSet) (Symbols, error) {
	var doc indexDoc
	if err := decodeDocument(r, &doc); err != nil {
		return Symbols{}, &ParseError{Err: err}
	}

	var symbols Symbols
	for i, c := range doc.Compounds {
		switch c.Kind {
		case "file":
			fileName, err := requireName(c.Name, fmt.Sprintf("compound %d (file)", i))
			if err != nil {
				return Symbols{}, err
			}
			if !allowed.Contains(fileName) {
				continue
			}
			for j, m := range c.Members {
				kind, ok := memberKinds[m.Kind]
				if !ok {
					continue
				}
				name, err := requireName(m.Name, fmt.Sprintf("member %d (%s) of %s", j, m.Kind, fileName))
				if err != nil {
					return Symbols{}, err
				}
				symbols.Add(kind, name)
			}
		case "struct":
			name, err := requireName(c.Name, fmt.Sprintf("compound %d (struct)", i))
			if err != nil {
				return Symbols{}, err
			}
			symbols.Add(KindStruct, name)
		}
	}

	return symbols, nil
}

func requireName(name *string, where string) (string, error) {
	if name == nil || *name == "" {
		return "", &SchemaError{Detail: where, Err: ErrMissingName}
	}
	return *name, nil
}
