package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/loomworks/shopforge/cmd/shopforge/cmd"
)

func main() {
	// Optional .env for the AI API key
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
