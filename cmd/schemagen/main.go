// schemagen generates TypeScript, mongoose and GraphQL declarations from
// JSON or YAML schema documents.
package main

import (
	"fmt"
	"os"

	"github.com/syssam/schemagen/cmd/schemagen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
