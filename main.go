// ecoclean cleans scraped eco-friendly product listings into an
// analysis-ready dataset.
package main

import (
	"fmt"
	"os"

	"github.com/Vopiyo/Eco-Friendly-Market-Intelligence-System/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
