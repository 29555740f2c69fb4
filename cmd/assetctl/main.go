// Command assetctl is the AssetOps console: it signs in to the API, keeps
// the session on disk and lists or edits any resource from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/assetops/backend/internal/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, client.FormatError(err.Error()))
		os.Exit(1)
	}
}
