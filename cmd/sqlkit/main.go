// Command sqlkit renders dialect-specific DDL and converts serialized
// result documents.
package main

import (
	"os"

	"github.com/zoobzio/sqlkit/cmd/sqlkit/command"
)

func main() {
	if err := command.GetRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
