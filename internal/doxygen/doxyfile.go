package doxygen

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
)

const (
	// DoxyfileFile is the name of Doxygen's configuration dump.
	DoxyfileFile = "Doxyfile.xml"

	versionOption = "PROJECT_NUMBER"
)

type doxyfileDoc struct {
	XMLName xml.Name `xml:"doxyfile"`
	Options []option `xml:"option"`
}

type option struct {
	ID    string  `xml:"id,attr"`
	Value *string `xml:"value"`
}

// ReadVersion reads <dir>/Doxyfile.xml and returns the PROJECT_NUMBER value.
func ReadVersion(dir string) (string, error) {
	path := filepath.Join(dir, DoxyfileFile)

	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	defer f.Close()

	version, err := ParseDoxyfile(f)
	if err != nil {
		return "", withPath(err, path)
	}
	return version, nil
}

// ParseDoxyfile decodes a Doxyfile.xml dump from r and returns the value of
// its PROJECT_NUMBER option. If the option appears more than once the last
// occurrence wins. A missing option or empty value is a SchemaError.
func ParseDoxyfile(r io.Reader) (string, error) {
	var doc doxyfileDoc
	if err := decodeDocument(r, &doc); err != nil {
		return "", &ParseError{Err: err}
	}

	var value *string
	found := false
	for _, opt := range doc.Options {
		if opt.ID == versionOption {
			found = true
			value = opt.Value
		}
	}

	if !found {
		return "", &SchemaError{Err: ErrMissingVersion}
	}
	if value == nil || *value == "" {
		return "", &SchemaError{Detail: "option has no value", Err: ErrMissingVersion}
	}
	return *value, nil
}
