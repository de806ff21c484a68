// facemill - face milling G-code program builder
//
// Generates CNC-ready rectangular spiral face milling programs from stock
// and tool parameters.
//
// Build:
//   go build -o facemill ./cmd/facemill
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o facemill.exe ./cmd/facemill

package main

import (
	"fmt"
	"os"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
