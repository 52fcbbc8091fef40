package domain

const unknownDescription = "Unknown"

// ExtractMode defines how remedies are pulled out of matching chunks.
type ExtractMode string

// Available extraction modes.
const (
	// ExtractModeHeuristic uses only the regex/keyword rules.
	ExtractModeHeuristic ExtractMode = "heuristic"

	// ExtractModeLLM asks a language model to refine the heuristic
	// result, falling back to the heuristics on any failure.
	ExtractModeLLM ExtractMode = "llm"

	// ExtractModeAuto picks LLM refinement when a provider is
	// configured and heuristics otherwise.
	ExtractModeAuto ExtractMode = "auto"
)

// IsValid returns true if the extract mode is recognised.
func (m ExtractMode) IsValid() bool {
	switch m {
	case ExtractModeHeuristic, ExtractModeLLM, ExtractModeAuto:
		return true
	default:
		return false
	}
}

// RequiresLLM returns true if this mode needs an LLM provider.
func (m ExtractMode) RequiresLLM() bool {
	return m == ExtractModeLLM
}

// String returns the string representation.
func (m ExtractMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ExtractMode) Description() string {
	switch m {
	case ExtractModeHeuristic:
		return "Heuristic (regex and keyword rules)"
	case ExtractModeLLM:
		return "LLM (model-refined extraction)"
	case ExtractModeAuto:
		return "Auto (LLM when configured)"
	default:
		return unknownDescription
	}
}

// AIProvider identifies a language model provider for extraction.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}
