package main

import (
	"cappy/cmd/handlers"
)

func main() {
	// Logging is initialized from configuration by the root command
	handlers.Execute()
}
