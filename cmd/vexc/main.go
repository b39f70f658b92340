// Command vexc compiles Vex source to x86-64 System V assembly.
package main

import (
	"fmt"
	"os"

	"github.com/vexlang/vexc/cmd/vexc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
