package main

import (
	"log"
	"os"

	"github.com/venturoid/driverproxy/cmd/connurl/app"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("failed to run connurl: %v", err)
	}

	os.Exit(0)
}

func run() error {
	return app.NewRootCmd().Execute()
}
