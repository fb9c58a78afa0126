package ai

import "context"

// ProviderGemini is the only text generation backend wired today.
const ProviderGemini = "gemini"

// Generator produces free text for a system instruction and a user message.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}
