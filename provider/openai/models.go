package openai

import "github.com/jonwraymond/llmops/provider"

// knownModels is the model metadata this adapter publishes. Context and
// output limits follow the published OpenAI model reference.
var knownModels = []provider.ModelInfo{
	{
		ID:                "gpt-4o",
		Name:              "GPT-4o",
		ContextLength:     128_000,
		MaxOutputTokens:   16_384,
		SupportsStreaming: true,
	},
	{
		ID:                "gpt-4o-mini",
		Name:              "GPT-4o mini",
		ContextLength:     128_000,
		MaxOutputTokens:   16_384,
		SupportsStreaming: true,
	},
	{
		ID:                "gpt-4.1",
		Name:              "GPT-4.1",
		ContextLength:     1_047_576,
		MaxOutputTokens:   32_768,
		SupportsStreaming: true,
	},
	{
		ID:                "gpt-4.1-mini",
		Name:              "GPT-4.1 mini",
		ContextLength:     1_047_576,
		MaxOutputTokens:   32_768,
		SupportsStreaming: true,
	},
	{
		ID:                "o3-mini",
		Name:              "o3-mini",
		ContextLength:     200_000,
		MaxOutputTokens:   100_000,
		SupportsStreaming: true,
		SupportsReasoning: true,
	},
	{
		ID:                "o1",
		Name:              "o1",
		ContextLength:     200_000,
		MaxOutputTokens:   100_000,
		SupportsReasoning: true,
	},
}

func modelTable() map[string]provider.ModelInfo {
	table := make(map[string]provider.ModelInfo, len(knownModels))
	for _, m := range knownModels {
		table[m.ID] = m
	}
	return table
}
