package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/docquery/docquery/internal/adapters/driving/cli"
	"github.com/docquery/docquery/internal/logger"
)

func main() {
	// Optional .env for provider credentials; absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
