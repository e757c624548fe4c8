package main

import (
	"os"

	"github.com/sidediff/sidediff/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
