package main

import (
	"os"

	"github.com/tsawler/pdfdiff/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
