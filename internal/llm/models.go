package llm

// availableModels maps user-facing display names to OpenRouter model IDs.
// Only models on this list may be selected per request.
var availableModels = map[string]string{
	"GPT-3.5 Turbo":   "openai/gpt-3.5-turbo",
	"GPT-4":           "openai/gpt-4",
	"GPT-4 Turbo":     "openai/gpt-4-turbo",
	"Claude 3 Haiku":  "anthropic/claude-3-haiku",
	"Claude 3 Sonnet": "anthropic/claude-3-sonnet",
	"Claude 3 Opus":   "anthropic/claude-3-opus",
	"Llama 2 70B":     "meta-llama/llama-2-70b-chat",
	"Mixtral 8x7B":    "mistralai/mixtral-8x7b-instruct",
}

// ResolveModel maps a display name to its model ID. It also accepts a raw
// model ID that is already on the allow-list. Unknown names return false.
func ResolveModel(name string) (string, bool) {
	if id, ok := availableModels[name]; ok {
		return id, true
	}
	for _, id := range availableModels {
		if id == name {
			return id, true
		}
	}
	return "", false
}

// AvailableModels returns a copy of the display-name to model-ID table.
func AvailableModels() map[string]string {
	out := make(map[string]string, len(availableModels))
	for name, id := range availableModels {
		out[name] = id
	}
	return out
}
