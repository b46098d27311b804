// Command coolc is the batch COOL-to-MIPS compiler driver.
package main

import (
	"fmt"
	"os"

	"github.com/coolc/coolc/cmd/coolc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
