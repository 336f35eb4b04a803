package config

import "strings"

// ModelInfo describes a model family.
type ModelInfo struct {
	Name            string
	ContextWindow   int
	InputPrice      float64 // USD per million tokens
	OutputPrice     float64 // USD per million tokens
	CacheReadPrice  float64 // USD per million tokens
	CacheWritePrice float64 // USD per million tokens
}

// modelPrefixes is matched in order; longer prefixes come first.
var modelPrefixes = []struct {
	prefix string
	info   ModelInfo
}{
	{"claude-opus-4-5", ModelInfo{Name: "Opus 4.5", ContextWindow: 200_000, InputPrice: 5, OutputPrice: 25, CacheReadPrice: 0.5, CacheWritePrice: 6.25}},
	{"claude-opus-4", ModelInfo{Name: "Opus 4", ContextWindow: 200_000, InputPrice: 15, OutputPrice: 75, CacheReadPrice: 1.5, CacheWritePrice: 18.75}},
	{"claude-sonnet-4-5", ModelInfo{Name: "Sonnet 4.5", ContextWindow: 200_000, InputPrice: 3, OutputPrice: 15, CacheReadPrice: 0.3, CacheWritePrice: 3.75}},
	{"claude-sonnet-4", ModelInfo{Name: "Sonnet 4", ContextWindow: 200_000, InputPrice: 3, OutputPrice: 15, CacheReadPrice: 0.3, CacheWritePrice: 3.75}},
	{"claude-3-7-sonnet", ModelInfo{Name: "Sonnet 3.7", ContextWindow: 200_000, InputPrice: 3, OutputPrice: 15, CacheReadPrice: 0.3, CacheWritePrice: 3.75}},
	{"claude-haiku-4-5", ModelInfo{Name: "Haiku 4.5", ContextWindow: 200_000, InputPrice: 1, OutputPrice: 5, CacheReadPrice: 0.1, CacheWritePrice: 1.25}},
	{"claude-3-5-haiku", ModelInfo{Name: "Haiku 3.5", ContextWindow: 200_000, InputPrice: 0.8, OutputPrice: 4, CacheReadPrice: 0.08, CacheWritePrice: 1}},
	{"gpt-5", ModelInfo{Name: "GPT-5", ContextWindow: 400_000, InputPrice: 1.25, OutputPrice: 10, CacheReadPrice: 0.125}},
	{"gemini-2.5-pro", ModelInfo{Name: "Gemini 2.5 Pro", ContextWindow: 1_000_000, InputPrice: 1.25, OutputPrice: 10, CacheReadPrice: 0.31}},
}

// LookupModel returns the info for a model id. Dated suffixes and provider
// prefixes ("anthropic/claude-sonnet-4-5-20250929") are tolerated.
func LookupModel(modelID string) (ModelInfo, bool) {
	id := strings.ToLower(modelID)
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	if id == "" {
		return ModelInfo{}, false
	}
	for _, m := range modelPrefixes {
		if strings.HasPrefix(id, m.prefix) {
			return m.info, true
		}
	}
	return ModelInfo{}, false
}

// ContextWindow returns the model's context window, or 0 when unknown.
func ContextWindow(modelID string) int {
	info, _ := LookupModel(modelID)
	return info.ContextWindow
}

// ModelName returns a short display name. Unknown ids are returned as given.
func ModelName(modelID string) string {
	if info, ok := LookupModel(modelID); ok {
		return info.Name
	}
	return modelID
}

// Cost estimates the USD cost of one request. Unknown models cost 0.
func Cost(modelID string, input, output, cacheRead, cacheWrite int) float64 {
	info, ok := LookupModel(modelID)
	if !ok {
		return 0
	}
	return (float64(input)*info.InputPrice +
		float64(output)*info.OutputPrice +
		float64(cacheRead)*info.CacheReadPrice +
		float64(cacheWrite)*info.CacheWritePrice) / 1_000_000
}
