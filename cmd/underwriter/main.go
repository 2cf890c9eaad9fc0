package main

import (
	"context"
	"os"

	"github.com/couchcryptid/storm-underwriter/cmd/underwriter/commands"
)

func main() {
	if err := commands.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
