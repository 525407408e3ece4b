package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/bub/cmd/bub"
	"github.com/arthur-debert/bub/internal/version"
)

func main() {
	rootCmd := bub.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "BUB",
		Section: "1",
		Source:  "bub " + version.Version,
		Manual:  "bub manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
