// Command htmlform renders, inspects and fills HTML forms described by
// OpenAPI documents.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
