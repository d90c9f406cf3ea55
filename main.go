package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sunwei/pagegen/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:]))
}
