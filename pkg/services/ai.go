package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vmkteam/embedlog"
)

// Advisor turns free text plus rendered expense context into advisory
// natural-language text. It is best-effort: callers fall back to
// FallbackResponse when it fails.
type Advisor interface {
	Advise(ctx context.Context, message, expenseContext string) (string, error)
}

const (
	geminiModel    = "gemini-1.5-flash"
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	maxAttempts = 3
	maxBackoff  = 5 * time.Second
)

// Gemini calls the Google Generative Language REST API.
type Gemini struct {
	key string
	log embedlog.Logger
}

func NewGemini(key string, log embedlog.Logger) *Gemini {
	return &Gemini{key: key, log: log}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Advise sends the prompt to Gemini with bounded exponential backoff.
func (g *Gemini) Advise(ctx context.Context, message, expenseContext string) (string, error) {
	prompt := buildAdvicePrompt(message, expenseContext)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := g.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		g.log.Error(ctx, "gemini attempt failed", "attempt", attempt, "err", err)

		if attempt == maxAttempts {
			break
		}

		wait := time.Second << (attempt - 1)
		if wait > maxBackoff {
			wait = maxBackoff
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("gemini api call failed: %w", lastErr)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, _ := json.Marshal(reqBody)

	url := fmt.Sprintf(geminiEndpoint, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.key)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error: %s", string(body))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from gemini")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

func buildAdvicePrompt(message, expenseContext string) string {
	return fmt.Sprintf(`You are a helpful and friendly AI financial assistant for an expense tracking bot.

Your role is to:
1. Provide personalized financial advice based on the user's spending data
2. Help users understand their spending patterns
3. Suggest ways to save money and improve financial health
4. Answer questions about budgeting, saving, and financial planning

User's Expense Context:
%s

User's Message: "%s"

Instructions:
- Respond in a friendly, conversational tone
- Provide specific, actionable advice when possible
- Reference the user's actual spending data when relevant
- Keep responses concise but informative (max 500 words)

Please respond to the user's message:`, expenseContext, message)
}

// FallbackResponse is sent when the advisor is unavailable.
func FallbackResponse() string {
	return `🤖 *AI Assistant*

I'm having trouble connecting to my AI brain right now, but I'm here to help!

💡 *How I can help you:*
• Analyze your spending patterns
• Provide savings advice
• Help with budgeting
• Answer financial questions

Try asking me about:
• "How can I save more money?"
• "What's my biggest expense?"
• "Give me budget tips"

I'll be back to full AI power soon! 💰`
}
