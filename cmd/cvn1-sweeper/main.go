package main

import (
	"fmt"
	"os"

	"github.com/cvn1-standard/cvn1-sdk-go/pkg/shared"
)

var Version = "dev"

func main() {
	shared.LoadDotEnv(".env", "royalty_sweeper/.env")

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}
