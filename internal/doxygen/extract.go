// Package doxygen extracts C API symbols and the SDK version from the XML
// that Doxygen writes alongside its HTML output.
package doxygen

// Extract reads index.xml and Doxyfile.xml from dir. Either failure aborts
// the whole extraction.
func Extract(dir string) (*Result, error) {
	symbols, err := CollectSymbols(dir)
	if err != nil {
		return nil, err
	}

	version, err := ReadVersion(dir)
	if err != nil {
		return nil, err
	}

	return &Result{Symbols: symbols, Version: version}, nil
}
