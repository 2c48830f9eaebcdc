package services

import (
	"strings"
	"testing"
)

func TestBuildAdvicePrompt(t *testing.T) {
	prompt := buildAdvicePrompt("how much did I spend?", "Total: $100")

	if !strings.Contains(prompt, "how much did I spend?") {
		t.Error("prompt missing user message")
	}
	if !strings.Contains(prompt, "Total: $100") {
		t.Error("prompt missing expense context")
	}
}

func TestFallbackResponse(t *testing.T) {
	if FallbackResponse() == "" {
		t.Error("fallback response is empty")
	}
}
