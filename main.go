package main

import (
	"github.com/joho/godotenv"

	"github.com/mkpollard101/agentic-ai-starter/cmd"
)

func main() {
	// .env is optional; the environment wins over it either way.
	_ = godotenv.Load()

	cmd.Execute()
}
