package lessons

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/casualjim/strix/chain"
	"github.com/casualjim/strix/parser"
	"github.com/casualjim/strix/pkg/slogx"
	"github.com/casualjim/strix/prompt"
	"github.com/casualjim/strix/provider"
)

var (
	ideaPrompt = prompt.MustTemplate("You are  a creative innovative business idea in the industry: {industry}. Provide a concise business idea.")

	analysisPrompt = prompt.MustTemplate("Analyze the following business idea: '{idea}'. Identify 3 key strengths amd 3 potential weaknesses.")

	reportTemplate = prompt.MustTemplate(`# Business report: {industry}

## Idea

{idea}

## Analysis

{analysis}
`)
)

// Log records the intermediate outputs of a workflow.
type Log struct {
	mu      sync.Mutex
	entries []string
}

// Record appends v.
func (l *Log) Record(_ context.Context, v string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, v)
	slog.Debug("workflow step", slogx.LoggerName("advisor"), slogx.Truncated("output", v, 120))
}

// Entries returns everything recorded so far.
func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Report is the result of the business advisor workflow.
type Report struct {
	Industry string
	Idea     string
	Analysis string
	Markdown string
}

// Advisor generates a business idea for an industry, analyzes it and
// formats the result as a markdown report.
type Advisor struct {
	idea     chain.Runnable[prompt.Values, string]
	analysis chain.Runnable[prompt.Values, string]
	report   chain.Runnable[prompt.Values, string]
}

// NewAdvisor builds the workflow steps. Each model output is recorded in log.
func NewAdvisor(model provider.Model, log *Log) *Advisor {
	step := func(name string, tmpl *prompt.Template) chain.Runnable[prompt.Values, string] {
		return chain.Traced(chain.Pipe(chain.Pipe(chain.Pipe(
			chain.Prompt(tmpl),
			chain.LLM(model),
		), chain.Parser[string](parser.String{})),
			chain.Tap(log.Record),
		), chain.RunConfig{Name: name, Tags: []string{"advisor"}})
	}

	return &Advisor{
		idea:     step("idea", ideaPrompt),
		analysis: step("analysis", analysisPrompt),
		report:   chain.Traced(chain.Prompt(reportTemplate), chain.RunConfig{Name: "report", Tags: []string{"advisor"}}),
	}
}

// Steps describes the idea step, which the analysis step mirrors.
func (a *Advisor) Steps() []string {
	return chain.Describe(a.idea)
}

// Run executes the three steps in order.
func (a *Advisor) Run(ctx context.Context, industry string) (Report, error) {
	idea, err := a.idea.Invoke(ctx, prompt.Values{"industry": industry})
	if err != nil {
		return Report{}, err
	}
	analysis, err := a.analysis.Invoke(ctx, prompt.Values{"idea": idea})
	if err != nil {
		return Report{}, err
	}
	md, err := a.report.Invoke(ctx, prompt.Values{"industry": industry, "idea": idea, "analysis": analysis})
	if err != nil {
		return Report{}, err
	}
	return Report{Industry: industry, Idea: idea, Analysis: analysis, Markdown: md}, nil
}
