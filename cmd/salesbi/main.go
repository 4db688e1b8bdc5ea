// Command salesbi answers the sales question catalog over a directory of
// CSV files and presents the answers as text, JSON, CSV, SVG or a web page.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
