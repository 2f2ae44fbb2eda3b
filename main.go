package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/VladMinzatu/bootloader-symgen/internal/decoder"
)

var verbose bool

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Extracts the exported symbols of a bootloader ELF image into a linker address map.")
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable debug logging.").Short('v').BoolVar(&verbose)

	generateCmd := app.Command("generate", "Write the address map for a bootloader image.").Default()
	generateParams := addGenerateParams(generateCmd)

	lookupCmd := app.Command("lookup", "Resolve addresses against a generated address map.")
	lookupParams := addLookupParams(lookupCmd)

	parsedCmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	setupLogging(verbose)

	switch parsedCmd {
	case generateCmd.FullCommand():
		os.Exit(checkError(generate(generateParams, decoder.NewLoader(), decoder.NewELFDecoder())))
	case lookupCmd.FullCommand():
		os.Exit(checkError(lookup(lookupParams, os.Stdout)))
	default:
		slog.Error("Unknown command", "cmd", parsedCmd)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func checkError(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}
