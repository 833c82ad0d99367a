// Command gallerygen prepares gallery photos for the website.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"hearing-care-backend/internal/gallerygen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := gallerygen.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
