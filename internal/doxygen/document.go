package doxygen

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// decodeDocument decodes the root element of r into v and then requires the
// rest of the input to be well-formed trailing misc: whitespace, comments
// and processing instructions only.
func decodeDocument(r io.Reader, v any) error {
	dec := xml.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after document root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("unexpected text after document root")
			}
		}
	}
}
