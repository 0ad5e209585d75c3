package main

import (
	"flag"
	"fmt"
	"os"

	"chantd/internal/di"
	"chantd/internal/structures"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging to stdout")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "chantd: %s\n", err)
		os.Exit(1)
	}
}
