package main

import (
	"os"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/adapters/driving/cli"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=v1.0.0" ./cmd/lumina
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
