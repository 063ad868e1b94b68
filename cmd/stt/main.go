package main

import (
	"fmt"
	"os"

	"stt-frontend/cmd/stt/cmd"
	"stt-frontend/internal/config"
)

func main() {
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
