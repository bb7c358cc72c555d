// Package main provides an operator tool for city scenarios and save slots.
//
// Usage:
//
//	go run ./cmd/cityctl [global flags] <command> [flags]
//
// Commands:
//
//	validate [scenario...]   Dry-run load scenarios against the catalog
//	records                  List the records of a save slot
//	export --out <db>        Copy a save slot into a SQLite database
//	import --in <db>         Replace a save slot with the contents of a SQLite database
//	clear                    Empty a save slot
//
// Global flags:
//
//	--catalog <path>   Structure catalog (default data/catalog.yaml)
//	--slot <name>      Save slot (default "default")
//	--verbose          Enable verbose logging
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newCommand(os.Stdout, openGdataStore)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cityctl: %v\n", err)
		os.Exit(1)
	}
}
