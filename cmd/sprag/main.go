// Command sprag keeps a chunked document index in step with a remote corpus.
package main

import (
	"os"

	"github.com/sab110/Sharepoint-RAG/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version, bootstrap); err != nil {
		os.Exit(1)
	}
}
