package main

import (
	"context"
	"os"
)

func main() {
	ctx := context.Background()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
