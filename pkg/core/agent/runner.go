package agent

import (
	"context"
	"fmt"
	"strings"

	"tenk_analyzer/pkg/core/prompt"
	"tenk_analyzer/pkg/core/utils"
)

// SectionReader serves capped section content for exploration turns. The
// filing type satisfies this.
type SectionReader interface {
	Has(key string) bool
	Section(key string, maxChars int) (text string, truncated bool)
}

// Runner drives one agent's turn-bounded exchange with the model. The model
// may answer any turn with a JSON directive requesting a (re-)read of a
// section; a plain markdown answer ends the exchange. Exceeding the turn
// budget marks the task failed, preserving whatever text came back last.
type Runner struct {
	provider Provider
}

// Provider is the injected model capability: one prompt in, one response out.
// llm.Provider satisfies it; tests inject fakes.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

func NewRunner(provider Provider) *Runner {
	return &Runner{provider: provider}
}

// readDirective is the JSON shape of a model's section-read request, e.g.
// {"action": "read_section", "section_key": "section_7"}.
type readDirective struct {
	Action     string `json:"action"`
	SectionKey string `json:"section_key"`
}

// Run executes one analysis task. It never returns an error: every failure
// mode is folded into the SectionAnalysis status so sibling agents are
// unaffected.
func (r *Runner) Run(ctx context.Context, task Task, sections SectionReader) SectionAnalysis {
	result := SectionAnalysis{
		Agent:           task.Spec.Name,
		Target:          task.Spec.TargetItem,
		SectionKeyFound: task.SectionKey,
	}

	truncated := task.Truncated
	userPrompt := r.initialPrompt(task)
	lastResponse := ""

	for turn := 0; turn < task.Spec.MaxTurns; turn++ {
		resp, err := r.provider.GenerateResponse(ctx, userPrompt, task.Spec.Instructions, nil)
		if err != nil {
			fmt.Printf("  [%s] Error: %v\n", task.Spec.Name, err)
			result.Analysis = lastResponse
			result.Status = StatusFailed
			return result
		}
		lastResponse = resp

		if directive, ok := parseDirective(resp); ok {
			if !sections.Has(directive.SectionKey) {
				userPrompt = fmt.Sprintf("Error: '%s' not found or empty.\n\n%s\n\nPick a valid section key, or provide your analysis of the content already shown.",
					directive.SectionKey, task.Listing)
				continue
			}
			text, cut := sections.Section(directive.SectionKey, task.Spec.MaxContentChars)
			if cut {
				truncated = true
				text += fmt.Sprintf("\n\n[Content truncated. Showing first %d characters]", task.Spec.MaxContentChars)
			}
			result.SectionKeyFound = directive.SectionKey
			userPrompt = fmt.Sprintf("Content of %s:\n\n%s\n\n%s", directive.SectionKey, text, prompt.AnalysisFormat)
			continue
		}

		// Plain markdown answer: the exchange converged.
		result.Analysis = utils.CleanMarkdown(resp)
		if truncated {
			result.Status = StatusTruncated
		} else {
			result.Status = StatusSuccess
		}
		fmt.Printf("  [%s] Completed (%d turns)\n", task.Spec.Name, turn+1)
		return result
	}

	// Turn budget exhausted without a final answer. Salvage the partial text.
	fmt.Printf("  [%s] Turn budget exhausted (%d turns)\n", task.Spec.Name, task.Spec.MaxTurns)
	result.Analysis = lastResponse
	result.Status = StatusFailed
	return result
}

// initialPrompt combines the target item, the section listing, and the
// already-resolved section content into the first turn.
func (r *Runner) initialPrompt(task Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You need to analyze %s from a 10-K SEC filing.\n\n", task.Spec.TargetItem)
	sb.WriteString(task.Listing)
	fmt.Fprintf(&sb, "\nContent of %s", task.SectionKey)
	if task.Truncated {
		fmt.Fprintf(&sb, " (truncated to %d characters)", task.Spec.MaxContentChars)
	}
	fmt.Fprintf(&sb, ":\n\n%s\n\n", task.Content)
	sb.WriteString(`If you need a different section, reply ONLY with JSON: {"action": "read_section", "section_key": "..."}.
Otherwise, `)
	sb.WriteString(strings.ToLower(prompt.AnalysisFormat[:1]) + prompt.AnalysisFormat[1:])
	return sb.String()
}

// parseDirective recognizes a JSON read request. Markdown answers routinely
// contain braces, so only responses that look like a bare or fenced JSON
// object are considered.
func parseDirective(resp string) (readDirective, bool) {
	trimmed := strings.TrimSpace(resp)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "```") {
		return readDirective{}, false
	}

	var d readDirective
	if err := utils.ParseModelJSON(trimmed, &d); err != nil {
		return readDirective{}, false
	}
	if d.Action != "read_section" || d.SectionKey == "" {
		return readDirective{}, false
	}
	return d, true
}
