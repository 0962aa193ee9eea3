// Command xml2rst generates the Sphinx C API reference pages from Doxygen XML.
package main

import (
	"github.com/joho/godotenv"

	"github.com/mvp-joe/xml2rst/internal/cli"
)

func main() {
	// XML2RST_* settings may live in a .env next to the docs.
	_ = godotenv.Load()

	cli.Execute()
}
