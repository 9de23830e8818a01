package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"lockey/cmd/lockey"
)

func main() {
	err := lockey.Execute()
	if err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
