package main

import (
	"github.com/joho/godotenv"

	"github.com/spendwx/spendwx/cmd"
)

func main() {
	// Optional .env for overriding XDG paths in development.
	_ = godotenv.Load()

	cmd.Execute()
}
