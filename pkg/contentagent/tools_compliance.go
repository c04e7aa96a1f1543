// Policy and design compliance adapters. Both are prompt templates sent to
// the reasoning model with the guideline text embedded verbatim.
package contentagent

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

const complianceTemperature = 0.3
const complianceMaxTokens = 800

// checkPolicyTool reviews content against the policy guidelines.
type checkPolicyTool struct {
	ctx toolContext
}

func (t *checkPolicyTool) name() string {
	return "check_policy_compliance"
}

func (t *checkPolicyTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "check_policy_compliance",
			Description: openai.String("Check whether generated content complies with the policy guidelines."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"content_description": map[string]any{
						"type":        "string",
						"description": "Description of the image/video content",
					},
					"caption": map[string]any{
						"type":        "string",
						"description": "Accompanying caption text, if any",
					},
					"platform": map[string]any{
						"type":        "string",
						"description": "Target platform",
					},
				},
				"required": []string{"content_description"},
			},
		},
	}
}

type complianceResult struct {
	Report string `json:"report"`
}

func (t *checkPolicyTool) execute(argText string) (string, error) {
	var args struct {
		ContentDescription string `json:"content_description"`
		Caption            string `json:"caption"`
		Platform           string `json:"platform"`
	}
	if err := parseToolArgs(t.name(), argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	if err := requireString(t.name(), "content_description", args.ContentDescription); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	platform := strings.ToLower(strings.TrimSpace(args.Platform))
	if platform == "" {
		platform = "general"
	}
	caption := args.Caption
	if caption == "" {
		caption = "None provided"
	}

	report, err := t.ctx.Text.Complete(t.ctx.Ctx, textRequest{
		System:      policySystemPrompt(t.ctx.Guidelines.Policy(), platform),
		User:        fmt.Sprintf("Review this content:\n\nPLATFORM: %s\nCONTENT: %s\nCAPTION: %s\n\nProvide your compliance assessment.", platform, args.ContentDescription, caption),
		Temperature: complianceTemperature,
		MaxTokens:   complianceMaxTokens,
	})
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "policy compliance check failed"))
	}
	return marshalToolResponse(t.name(), complianceResult{Report: report}, nil)
}

func policySystemPrompt(guidelines, platform string) string {
	var sb strings.Builder
	sb.WriteString("You are a content policy compliance reviewer.\n")
	sb.WriteString("Evaluate the content against these guidelines:\n\n")
	sb.WriteString(guidelines)
	sb.WriteString("\n\nEVALUATION CRITERIA:\n")
	sb.WriteString("1. PROHIBITED CONTENT - violence, discrimination, misleading claims, copyright issues\n")
	sb.WriteString("2. BRAND VOICE - professional, inclusive, no exaggerations\n")
	sb.WriteString(fmt.Sprintf("3. PLATFORM FIT - appropriate tone for %s\n", platform))
	sb.WriteString("4. LEGAL - proper disclosures if needed\n\n")
	sb.WriteString("Report a STATUS (PASS / WARNING / FAIL), a SCORE out of 10, a line per check, ")
	sb.WriteString("any ISSUES found, and RECOMMENDATIONS.")
	return sb.String()
}

// checkDesignTool reviews visual content against the design guidelines.
type checkDesignTool struct {
	ctx toolContext
}

func (t *checkDesignTool) name() string {
	return "check_design_compliance"
}

func (t *checkDesignTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "check_design_compliance",
			Description: openai.String("Check whether generated visual content complies with the design guidelines."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"content_description": map[string]any{
						"type":        "string",
						"description": "Description of the visual elements",
					},
					"content_type": map[string]any{
						"type": "string",
						"enum": []string{"image", "video"},
					},
					"resolution": map[string]any{
						"type":        "string",
						"description": "Resolution if known, e.g. 1920x1080",
					},
				},
				"required": []string{"content_description"},
			},
		},
	}
}

func (t *checkDesignTool) execute(argText string) (string, error) {
	var args struct {
		ContentDescription string `json:"content_description"`
		ContentType        string `json:"content_type"`
		Resolution         string `json:"resolution"`
	}
	if err := parseToolArgs(t.name(), argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	if err := requireString(t.name(), "content_description", args.ContentDescription); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	contentType := pickAllowed(strings.ToLower(args.ContentType), []string{"image", "video"}, "image")
	resolution := args.Resolution
	if resolution == "" {
		resolution = "Not specified"
	}

	report, err := t.ctx.Text.Complete(t.ctx.Ctx, textRequest{
		System:      designSystemPrompt(t.ctx.Guidelines.Design(), contentType),
		User:        fmt.Sprintf("Review this %s:\n\nDESCRIPTION: %s\nRESOLUTION: %s\n\nProvide your design compliance assessment.", contentType, args.ContentDescription, resolution),
		Temperature: complianceTemperature,
		MaxTokens:   complianceMaxTokens,
	})
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "design compliance check failed"))
	}
	return marshalToolResponse(t.name(), complianceResult{Report: report}, nil)
}

func designSystemPrompt(guidelines, contentType string) string {
	var sb strings.Builder
	sb.WriteString("You are a design compliance reviewer for visual content.\n")
	sb.WriteString("Evaluate the content against these guidelines:\n\n")
	sb.WriteString(guidelines)
	sb.WriteString("\n\nEVALUATION CRITERIA:\n")
	sb.WriteString("1. COLORS - professional colors, high contrast, no neon\n")
	sb.WriteString("2. COMPOSITION - good framing, clean background, proper lighting\n")
	sb.WriteString("3. QUALITY - high resolution, sharp focus, no artifacts\n")
	sb.WriteString("4. ACCESSIBILITY - good contrast, no strobing\n\n")
	sb.WriteString(fmt.Sprintf("NOTE: You cannot see the actual %s, so evaluate based on the description ", contentType))
	sb.WriteString("and flag items that need manual visual review.\n\n")
	sb.WriteString("Report a STATUS (PASS / WARNING / FAIL), a SCORE out of 10, a line per check, ")
	sb.WriteString("any ISSUES found, items NEEDING MANUAL REVIEW, and RECOMMENDATIONS.")
	return sb.String()
}
