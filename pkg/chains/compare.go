package chains

import (
	"context"
	"fmt"

	"policy-compass-be/pkg/llm"
)

const comparePromptTemplate = `You are a legislative analyst. Compare the two bills below for a general
audience. Cover: purpose, who is affected, costs and funding, and the key
differences. Finish with a short plain-language verdict on how they differ.

Bill A (%s):
%s

Bill B (%s):
%s

Comparison:`

// CompareChain produces a side-by-side analysis of two bills.
type CompareChain struct {
	Provider llm.LLMProvider
}

func NewCompareChain(provider llm.LLMProvider) *CompareChain {
	return &CompareChain{Provider: provider}
}

// Compare truncates each document to a prompt-sized excerpt and asks the
// model for the analyst comparison. Model failure degrades to the excerpts
// themselves.
func (c *CompareChain) Compare(ctx context.Context, nameA, textA, nameB, textB string, opts ...llm.Option) (string, error) {
	excerptA := truncate(textA, 6000)
	excerptB := truncate(textB, 6000)

	prompt := fmt.Sprintf(comparePromptTemplate, nameA, excerptA, nameB, excerptB)

	answer, err := c.Provider.Generate(ctx, prompt, opts...)
	if err != nil {
		return fmt.Sprintf("The analysis service is currently unavailable. Excerpts for manual review:\n\n%s:\n%s\n\n%s:\n%s",
			nameA, truncate(textA, 600), nameB, truncate(textB, 600)), nil
	}
	return answer, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
