// Package main is the interactive CLI for the content generation agent.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/soracraft/content-agent-go/pkg/contentagent"
)

func main() {
	cfg, flags, err := parseCLIConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(flags.Verbose)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	cfg.Logger = logger

	printBanner(os.Stdout)

	if cfg.APIKey == "" {
		_, _ = fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY is not configured.")
		_, _ = fmt.Fprintln(os.Stderr, "Set it in your environment or a .env file:")
		_, _ = fmt.Fprintln(os.Stderr, "  OPENAI_API_KEY=sk-your-actual-api-key-here")
		os.Exit(1)
	}

	fmt.Println("Let's configure your content generation settings.")
	fmt.Println("(Press Enter to accept default values)")
	cfg.Generation = promptGenerationConfig(os.Stdin, os.Stdout, cfg.Generation)

	app, err := contentagent.New(context.Background(), cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runREPL(app, replOptions{Stream: cfg.Stream}, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(out *os.File) {
	_, _ = fmt.Fprintln(out, "=====================================================")
	_, _ = fmt.Fprintln(out, "  Content Generation Agent")
	_, _ = fmt.Fprintln(out, "  AI-powered social media content creator")
	_, _ = fmt.Fprintln(out, "=====================================================")
	_, _ = fmt.Fprintln(out)
}
