// cmd/pcrsim/main.go
package main

import (
	"os"

	"pcrsim/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
