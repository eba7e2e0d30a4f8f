package main

import (
	"os"

	"github.com/Rem7474/CCNA1/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
