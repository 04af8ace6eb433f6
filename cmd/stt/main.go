package main

import (
	"fmt"
	"os"

	"speech-to-text/cmd/stt/cmd"
	"speech-to-text/internal/config"
)

func main() {
	// A missing .env is fine; variables may be set system-wide
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
