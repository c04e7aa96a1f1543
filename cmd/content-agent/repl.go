package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/soracraft/content-agent-go/pkg/contentagent"
)

// replOptions configures REPL behavior.
type replOptions struct {
	Stream bool
}

// chatApp is the surface the REPL needs from the agent.
type chatApp interface {
	Chat(input string, opts contentagent.ChatOptions) (contentagent.ChatResult, error)
	ClearHistory()
	Reconfigure(gen contentagent.GenerationConfig) error
	Settings() contentagent.GenerationConfig
}

// runREPL starts an interactive session. Lines beginning with "/" are local
// commands; everything else is forwarded to the agent as a user turn.
func runREPL(app chatApp, opts replOptions, in io.Reader, out io.Writer) error {
	if app == nil {
		return fmt.Errorf("app is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	scanner := bufio.NewScanner(in)
	printWelcome(out)

	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			handled, shouldQuit := handleCommand(input, app, scanner, out)
			if shouldQuit {
				break
			}
			if handled {
				continue
			}
		}

		result, err := app.Chat(input, contentagent.ChatOptions{
			Stream:       opts.Stream,
			StreamWriter: out,
		})
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}

		if !result.Streamed {
			_, _ = fmt.Fprintf(out, "%s\n\n", result.Content)
		} else {
			_, _ = fmt.Fprintln(out)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "=== Content Agent - Interactive Mode ===")
	_, _ = fmt.Fprintln(out, "Describe your event or content needs and press Enter. Commands:")
	printCommands(out)
}

// handleCommand processes local commands without forwarding to the agent.
// Returns (handled, shouldQuit).
func handleCommand(input string, app chatApp, scanner *bufio.Scanner, out io.Writer) (bool, bool) {
	switch strings.ToLower(input) {
	case "/help", "/h":
		_, _ = fmt.Fprintln(out, "Commands:")
		printCommands(out)
		return true, false
	case "/config":
		_, _ = fmt.Fprintln(out, "Reconfiguring settings...")
		newCfg := promptGenerationConfig(readerFromScanner(scanner), out, app.Settings())
		if err := app.Reconfigure(newCfg); err != nil {
			_, _ = fmt.Fprintf(out, "Configuration rejected: %v\n\n", err)
			return true, false
		}
		_, _ = fmt.Fprintln(out, "Agent updated with new configuration.")
		_, _ = fmt.Fprintln(out)
		return true, false
	case "/settings":
		_, _ = fmt.Fprintln(out, app.Settings().Describe())
		_, _ = fmt.Fprintln(out)
		return true, false
	case "/clear", "/c":
		app.ClearHistory()
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
		return true, false
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true, true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
		return true, false
	}
}

func printCommands(out io.Writer) {
	_, _ = fmt.Fprintln(out, "  /config   - Reconfigure generation settings")
	_, _ = fmt.Fprintln(out, "  /settings - View current settings")
	_, _ = fmt.Fprintln(out, "  /clear    - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /help     - Show this help message")
	_, _ = fmt.Fprintln(out, "  /exit     - Exit the application")
	_, _ = fmt.Fprintln(out)
}

// readerFromScanner lets the configuration prompt reuse the REPL's scanner
// without double-buffering stdin.
func readerFromScanner(scanner *bufio.Scanner) io.Reader {
	return scannerReader{scanner: scanner}
}

type scannerReader struct {
	scanner *bufio.Scanner
}

// Read hands one buffered line at a time to the configuration prompt.
func (r scannerReader) Read(p []byte) (int, error) {
	if !r.scanner.Scan() {
		return 0, io.EOF
	}
	line := r.scanner.Text() + "\n"
	n := copy(p, line)
	return n, nil
}
