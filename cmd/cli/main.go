package main

import (
	"os"

	"github.com/amirasaad/ledgerbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
