// Package main provides the Cain ML CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Cain ML %s\n", version)
		return
	}

	fmt.Printf("Cain ML %s - adaptive batch-size and step-size optimization\n\n", version)
	fmt.Println("Cain is a library; training runs are wired up in Go code against")
	fmt.Println("the graph and supplier interfaces. Runnable demos:")
	fmt.Println("")
	fmt.Println("  go run ./examples/quadratic     fit one parameter to noisy observations")
	fmt.Println("  go run ./examples/regression    two-feature linear regression, full adaptive loop")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
}
