package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/tetherctl/internal/app"
)

func main() {
	if err := app.Execute(); err != nil {
		if !errors.Is(err, app.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
