package chains

import (
	"context"
	"fmt"

	"policy-compass-be/pkg/llm"
)

// EnsembleResult carries the per-model answers alongside the final one.
type EnsembleResult struct {
	Answer     string            `json:"answer"`
	ModelsUsed []string          `json:"models_used"`
	PerModel   map[string]string `json:"per_model"`
}

const synthesisPromptTemplate = `Two AI analysts answered the same question about a policy document.
Combine their answers into one response that keeps the strongest points of
each and resolves any disagreement explicitly.

Question: %s

Analyst 1 (%s):
%s

Analyst 2 (%s):
%s

Combined answer:`

// EnsembleChain runs two providers over the same question and synthesizes
// their answers with the first provider.
type EnsembleChain struct {
	Primary       llm.LLMProvider
	PrimaryName   string
	Secondary     llm.LLMProvider
	SecondaryName string
	QA            *QAChain
}

func NewEnsembleChain(primary llm.LLMProvider, primaryName string, secondary llm.LLMProvider, secondaryName string) *EnsembleChain {
	return &EnsembleChain{
		Primary:       primary,
		PrimaryName:   primaryName,
		Secondary:     secondary,
		SecondaryName: secondaryName,
		QA:            NewQAChain(primary),
	}
}

// Answer asks both models in sequence. When the second model is missing or
// fails, the first answer stands alone. A generic-sounding synthesis gets
// one fallback prompt; if that also fails the two answers are concatenated.
// The two providers authenticate independently, so each leg carries its own
// option slice; synthesis runs on the primary with the primary's options.
func (e *EnsembleChain) Answer(ctx context.Context, retriever Retriever, question string, primaryOpts, secondaryOpts []llm.Option) (*EnsembleResult, error) {
	first, err := e.QA.Answer(ctx, retriever, question, false, primaryOpts...)
	if err != nil {
		return nil, fmt.Errorf("primary model: %w", err)
	}

	result := &EnsembleResult{
		PerModel:   map[string]string{e.PrimaryName: first},
		ModelsUsed: []string{e.PrimaryName},
	}

	if e.Secondary == nil {
		result.Answer = first
		return result, nil
	}

	secondQA := &QAChain{Provider: e.Secondary, TopK: e.QA.TopK}
	second, err := secondQA.Answer(ctx, retriever, question, false, secondaryOpts...)
	if err != nil {
		result.Answer = first
		return result, nil
	}

	result.PerModel[e.SecondaryName] = second
	result.ModelsUsed = append(result.ModelsUsed, e.SecondaryName)

	synthesis := fmt.Sprintf(synthesisPromptTemplate, question, e.PrimaryName, first, e.SecondaryName, second)
	combined, err := e.Primary.Generate(ctx, synthesis, primaryOpts...)
	if err == nil && !LooksGeneric(combined) {
		result.Answer = combined
		return result, nil
	}

	// One retry with a blunter instruction before giving up on synthesis.
	fallbackPrompt := fmt.Sprintf("Merge these two answers into one paragraph, keeping all facts:\n\n%s\n\n%s", first, second)
	combined, err = e.Primary.Generate(ctx, fallbackPrompt, primaryOpts...)
	if err == nil && !LooksGeneric(combined) {
		result.Answer = combined
		return result, nil
	}

	result.Answer = fmt.Sprintf("%s perspective:\n%s\n\n%s perspective:\n%s", e.PrimaryName, first, e.SecondaryName, second)
	return result, nil
}
