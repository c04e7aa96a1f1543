// Interactive configuration prompt.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soracraft/content-agent-go/pkg/contentagent"
)

// promptGenerationConfig walks the user through the generation settings.
// Empty input accepts the default shown; invalid input is coerced back to
// the default with a warning, so the result always validates.
func promptGenerationConfig(in io.Reader, out io.Writer, defaults contentagent.GenerationConfig) contentagent.GenerationConfig {
	scanner := bufio.NewScanner(in)
	cfg := defaults

	_, _ = fmt.Fprintln(out, "\nConfiguration Setup")
	_, _ = fmt.Fprintln(out, strings.Repeat("=", 55))

	// Platforms
	_, _ = fmt.Fprintln(out, "\nTarget platforms:")
	_, _ = fmt.Fprintf(out, "  Available: %s\n", strings.Join(contentagent.AvailablePlatforms, ", "))
	_, _ = fmt.Fprintln(out, "  (You can select multiple, comma-separated)")
	if input := ask(scanner, out, fmt.Sprintf("  Platforms [default: %s]: ", strings.Join(cfg.TargetPlatforms, ","))); input != "" {
		var selected []string
		for _, p := range strings.Split(strings.ToLower(input), ",") {
			p = strings.TrimSpace(p)
			if containsString(contentagent.AvailablePlatforms, p) {
				selected = append(selected, p)
			}
		}
		if len(selected) > 0 {
			cfg.TargetPlatforms = selected
		} else {
			_, _ = fmt.Fprintln(out, "  No valid platforms. Using default.")
		}
	}

	// Video
	_, _ = fmt.Fprintln(out, "\nVideo settings:")
	if input := ask(scanner, out, fmt.Sprintf("  Duration in seconds (5-60) [default: %d]: ", cfg.VideoDuration)); input != "" {
		if duration, err := strconv.Atoi(input); err == nil && duration >= 5 && duration <= 60 {
			cfg.VideoDuration = duration
		} else {
			_, _ = fmt.Fprintln(out, "  Invalid input. Using default.")
		}
	}

	_, _ = fmt.Fprintln(out, "\n  Aspect ratios:")
	for _, ratio := range contentagent.SupportedAspectRatios() {
		info := contentagent.AspectRatioOptions[ratio]
		_, _ = fmt.Fprintf(out, "    - %s (%s) - %s\n", ratio, info.Size, info.Description)
	}
	if input := ask(scanner, out, fmt.Sprintf("  Aspect ratio [default: %s]: ", cfg.VideoAspectRatio)); input != "" {
		if _, ok := contentagent.AspectRatioOptions[input]; ok {
			cfg.VideoAspectRatio = input
		} else {
			_, _ = fmt.Fprintln(out, "  Invalid option. Using default.")
		}
	}

	// Image
	_, _ = fmt.Fprintln(out, "\nImage settings:")
	_, _ = fmt.Fprintln(out, "  Sizes: 1024x1024 (square), 1792x1024 (landscape), 1024x1792 (portrait)")
	if input := ask(scanner, out, fmt.Sprintf("  Image size [default: %s]: ", cfg.ImageSize)); input != "" {
		if containsString([]string{"1024x1024", "1792x1024", "1024x1792"}, input) {
			cfg.ImageSize = input
		} else {
			_, _ = fmt.Fprintln(out, "  Invalid option. Using default.")
		}
	}

	// Captions
	_, _ = fmt.Fprintln(out, "\nCaption settings:")
	if input := strings.ToLower(ask(scanner, out, "  Enable captions? (yes/no) [default: yes]: ")); isNo(input) {
		cfg.EnableCaptions = false
	}
	if cfg.EnableCaptions {
		if input := strings.ToLower(ask(scanner, out, fmt.Sprintf("  Style (professional/casual/creative) [default: %s]: ", cfg.CaptionStyle))); input != "" {
			if containsString([]string{"professional", "casual", "creative"}, input) {
				cfg.CaptionStyle = input
			}
		}
	}

	// Workflow
	_, _ = fmt.Fprintln(out, "\nWorkflow settings:")
	if input := strings.ToLower(ask(scanner, out, "  Auto-run compliance checks? (yes/no) [default: yes]: ")); isNo(input) {
		cfg.AutoCompliance = false
	}
	if input := strings.ToLower(ask(scanner, out, "  Auto-publish after generation? (yes/no) [default: no]: ")); isYes(input) {
		cfg.AutoPublish = true
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	_, _ = fmt.Fprintln(out, cfg.Describe())
	return cfg
}

func ask(scanner *bufio.Scanner, out io.Writer, prompt string) string {
	_, _ = fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func isNo(input string) bool {
	switch input {
	case "no", "n", "false", "0":
		return true
	}
	return false
}

func isYes(input string) bool {
	switch input {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
