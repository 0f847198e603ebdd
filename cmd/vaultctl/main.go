// Command vaultctl encodes and decodes media folders and extracts video
// frames from the command line.
package main

import (
	"os"

	"vaultview/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
