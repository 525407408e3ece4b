package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/bub/cmd/bub"
	"github.com/arthur-debert/bub/pkg/ui/styles"
)

func main() {
	rootCmd := bub.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
