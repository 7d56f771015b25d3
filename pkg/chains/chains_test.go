package chains

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policy-compass-be/pkg/llm"
)

// scriptedProvider returns canned answers in order, then repeats the last.
type scriptedProvider struct {
	answers []string
	err     error
	calls   int
	prompts []string
}

func (s *scriptedProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	idx := s.calls
	if idx >= len(s.answers) {
		idx = len(s.answers) - 1
	}
	s.calls++
	return s.answers[idx], nil
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func TestLooksUninformative(t *testing.T) {
	assert.True(t, LooksUninformative("I don't have enough information to say."))
	assert.True(t, LooksUninformative("Sorry, I cannot determine that."))
	assert.True(t, LooksUninformative("   "))
	assert.False(t, LooksUninformative("Section 2 caps premiums at 8.5% of income."))
}

func TestLooksGeneric(t *testing.T) {
	assert.True(t, LooksGeneric("I apologize, but an error occurred."))
	assert.False(t, LooksGeneric("The bills differ mainly in funding."))
}

func TestQAChainAnswers(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"Premiums are capped."}}
	chain := NewQAChain(provider)

	got, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk one"}}, "what about premiums?", false)
	require.NoError(t, err)
	assert.Equal(t, "Premiums are capped.", got)
	assert.Equal(t, 1, provider.calls)
}

func TestQAChainRetriesUninformativeAnswer(t *testing.T) {
	provider := &scriptedProvider{answers: []string{
		"I don't know.",
		"The document partially addresses premiums in section 4.",
	}}
	chain := NewQAChain(provider)

	got, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk"}}, "premiums?", false)
	require.NoError(t, err)
	assert.Contains(t, got, "section 4")
	assert.Equal(t, 2, provider.calls)
}

func TestQAChainFallsBackToExcerptOnModelError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	chain := NewQAChain(provider)

	got, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"the only excerpt"}}, "q", false)
	require.NoError(t, err)
	assert.Contains(t, got, "the only excerpt")
	assert.Contains(t, got, "currently unavailable")
}

func TestQAChainELI5AppendsSuffix(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"ok"}}
	chain := NewQAChain(provider)

	_, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk"}}, "q", true)
	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "five years old")
}

func TestParseQuizJSON(t *testing.T) {
	raw := "```json\n[{\"question\":\"Q1?\",\"options\":[\"A) x\",\"B) y\"],\"answer\":\"A\",\"explanation\":\"because\"}]\n```"
	questions := parseQuizJSON(raw)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q1?", questions[0].Question)
	assert.Equal(t, "A", questions[0].Answer)

	assert.Nil(t, parseQuizJSON("I can't generate a quiz right now."))
	assert.Nil(t, parseQuizJSON("[]"))
}

func TestQuizChainInvalidJSONReturnsNil(t *testing.T) {
	provider := &scriptedProvider{answers: []string{"sorry, no JSON here"}}
	chain := NewQuizChain(provider)

	questions, err := chain.Generate(context.Background(), "excerpt")
	require.NoError(t, err)
	assert.Nil(t, questions)
}

func TestEnsembleSecondaryMissing(t *testing.T) {
	primary := &scriptedProvider{answers: []string{"first answer"}}
	chain := NewEnsembleChain(primary, "gpt-4o-mini", nil, "claude")

	result, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk"}}, "q", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "first answer", result.Answer)
	assert.Equal(t, []string{"gpt-4o-mini"}, result.ModelsUsed)
}

func TestEnsembleSynthesizes(t *testing.T) {
	primary := &scriptedProvider{answers: []string{"first answer", "combined view"}}
	secondary := &scriptedProvider{answers: []string{"second answer"}}
	chain := NewEnsembleChain(primary, "gpt-4o-mini", secondary, "claude")

	result, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk"}}, "q", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "combined view", result.Answer)
	assert.ElementsMatch(t, []string{"gpt-4o-mini", "claude"}, result.ModelsUsed)
	assert.Equal(t, "first answer", result.PerModel["gpt-4o-mini"])
	assert.Equal(t, "second answer", result.PerModel["claude"])
}

func TestEnsembleGenericSynthesisFallsBackToConcat(t *testing.T) {
	primary := &scriptedProvider{answers: []string{
		"first answer",
		"I apologize, but an error occurred.",
		"I apologize, but an error occurred.",
	}}
	secondary := &scriptedProvider{answers: []string{"second answer"}}
	chain := NewEnsembleChain(primary, "gpt", secondary, "claude")

	result, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk"}}, "q", nil, nil)
	require.NoError(t, err)
	assert.True(t, strings.Contains(result.Answer, "first answer") && strings.Contains(result.Answer, "second answer"),
		"plain concatenation should carry both answers, got %q", result.Answer)
}

// keyRecordingProvider tracks the API key resolved from the options of
// every call.
type keyRecordingProvider struct {
	scriptedProvider
	keys []string
}

func (k *keyRecordingProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	k.keys = append(k.keys, llm.Apply(llm.Options{}, opts).APIKey)
	return k.scriptedProvider.Generate(ctx, prompt)
}

func (k *keyRecordingProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	k.keys = append(k.keys, llm.Apply(llm.Options{}, opts).APIKey)
	return k.scriptedProvider.Chat(ctx, history)
}

func TestEnsembleKeepsProviderKeysSeparate(t *testing.T) {
	primary := &keyRecordingProvider{scriptedProvider: scriptedProvider{answers: []string{"first answer", "combined view"}}}
	secondary := &keyRecordingProvider{scriptedProvider: scriptedProvider{answers: []string{"second answer"}}}
	chain := NewEnsembleChain(primary, "openai", secondary, "anthropic")

	_, err := chain.Answer(context.Background(), &StaticRetriever{Chunks: []string{"chunk"}}, "q",
		[]llm.Option{llm.WithAPIKey("session-openai-key")},
		[]llm.Option{llm.WithAPIKey("configured-anthropic-key")},
	)
	require.NoError(t, err)

	require.NotEmpty(t, primary.keys)
	for _, key := range primary.keys {
		assert.Equal(t, "session-openai-key", key)
	}
	require.NotEmpty(t, secondary.keys)
	for _, key := range secondary.keys {
		assert.Equal(t, "configured-anthropic-key", key)
	}
}
