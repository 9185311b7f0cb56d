package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional for the CLI.
	_ = godotenv.Load()

	Execute()
}
