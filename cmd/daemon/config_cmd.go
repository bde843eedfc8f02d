// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/version"
)

func runConfigCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "init":
		return runConfigInit(args[1:], stdout, stderr)
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "dump":
		return runConfigDump(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  clipgate config init [--file|-f config.yaml] [--video path] [--force]")
	fmt.Fprintln(w, "  clipgate config validate [--file|-f config.yaml]")
	fmt.Fprintln(w, "  clipgate config dump [--file|-f config.yaml] [--format=yaml|json]")
}

func fileFlag(fs *flag.FlagSet) *string {
	var file string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	return &file
}

func runConfigInit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clipgate config init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fileFlag(fs)
	videoPath := fs.String("video", "", "video file to serve")
	force := fs.Bool("force", false, "overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := strings.TrimSpace(*file)
	if path == "" {
		path = "config.yaml"
	}

	cfg := config.Defaults()
	if v := strings.TrimSpace(*videoPath); v != "" {
		cfg.Video.Path = v
	}

	if err := config.WriteFileConfig(path, config.FileConfigFrom(cfg), *force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			fmt.Fprintf(stderr, "Refusing to overwrite %s (use --force)\n", path)
			return 1
		}
		fmt.Fprintf(stderr, "Failed to write %s: %v\n", path, err)
		return 1
	}

	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return 0
}

func resolveCLIConfigPath(file string) string {
	if p := strings.TrimSpace(file); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(config.EnvConfigPath))
}

func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clipgate config validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fileFlag(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := resolveCLIConfigPath(*file)
	if configPath == "" {
		fmt.Fprintf(stderr, "Error: --file is required (or set %s)\n", config.EnvConfigPath)
		return 2
	}

	loader := config.NewLoader(configPath, version.Version)
	if _, err := loader.Load(); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", configPath, err)
		return 1
	}

	fmt.Fprintf(stdout, "%s is valid\n", configPath)
	return 0
}

func runConfigDump(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clipgate config dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fileFlag(fs)
	format := fs.String("format", "yaml", "output format: yaml or json")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// An empty path dumps env and defaults.
	loader := config.NewLoader(resolveCLIConfigPath(*file), version.Version)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	fileCfg := config.FileConfigFrom(cfg)

	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fileCfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", *format)
		return 2
	}
}
