package narrative

import (
	"context"
	"fmt"
	"strings"
)

type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
	Model() string
}

const promptTemplate = `You are a project controls analyst. Write a short status commentary (at most five sentences)
for the project %q based on the earned value figures below. Mention whether the project is ahead of or behind
schedule and under or over budget, and what the forecast at completion means. Do not invent figures.

%s`

// BuildPrompt wraps the plain-text report of a project into the instruction sent to the model.
func BuildPrompt(projectName string, summary string) string {
	return fmt.Sprintf(promptTemplate, projectName, strings.TrimSpace(summary))
}

// StaticSummarizer answers without calling any model. It is used when narrative generation is disabled.
type StaticSummarizer struct {
	Text string
	Err  error
}

func NewStaticSummarizer(text string) *StaticSummarizer {
	return &StaticSummarizer{Text: text}
}

func (s *StaticSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

func (s *StaticSummarizer) Model() string {
	return "static"
}
