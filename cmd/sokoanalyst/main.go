package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kephothoX/SokoAnalyst/internal/cli"
	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/debug"
)

func main() {
	cfg := config.DefaultConfig()

	debugger := debug.NewEinoDebugger(cfg)
	if err := debugger.Initialize(); err != nil {
		log.Printf("Debug server unavailable: %v", err)
	}

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
