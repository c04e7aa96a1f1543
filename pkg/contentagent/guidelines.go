// Guideline text loading for the compliance adapters.
package contentagent

import (
	"os"
	"path/filepath"
	"strings"
)

const fallbackPolicyGuidelines = `## Prohibited Content
- Violence, weapons, harmful activities
- Discrimination
- Misleading claims
- Copyrighted materials
- Political content
- Explicit content

## Brand Voice
- Professional tone
- Inclusive language
- No exaggerated claims

## Legal
- Label sponsored content
- Use licensed content only`

const fallbackDesignGuidelines = `## Colors
- Professional, brand-appropriate colors
- High contrast for text
- No neon/oversaturated

## Composition
- Subject centered or rule-of-thirds
- Clean backgrounds
- Proper lighting

## Quality
- Minimum 1080p
- Sharp focus
- No watermarks

## Accessibility
- Good color contrast
- No flashing effects`

// Guidelines loads policy and design guideline files. Their content is
// opaque: it is embedded verbatim into prompts, never parsed.
type Guidelines struct {
	dir string
}

// NewGuidelines returns a loader rooted at dir.
func NewGuidelines(dir string) *Guidelines {
	return &Guidelines{dir: dir}
}

// Policy returns the policy guideline text, or built-in fallback rules when
// the file is absent.
func (g *Guidelines) Policy() string {
	return g.load("policy_guidelines.md", fallbackPolicyGuidelines)
}

// Design returns the design guideline text, or built-in fallback rules when
// the file is absent.
func (g *Guidelines) Design() string {
	return g.load("design_guidelines.md", fallbackDesignGuidelines)
}

// Combined concatenates both guideline sets for prompt enhancement.
func (g *Guidelines) Combined() string {
	var sb strings.Builder
	sb.WriteString("DESIGN RULES:\n")
	sb.WriteString(g.Design())
	sb.WriteString("\n\nCONTENT POLICY:\n")
	sb.WriteString(g.Policy())
	return sb.String()
}

func (g *Guidelines) load(name, fallback string) string {
	if g == nil || g.dir == "" {
		return fallback
	}
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	if err != nil {
		return fallback
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fallback
	}
	return text
}
