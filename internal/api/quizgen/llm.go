package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/devsphere/quizapi/internal/api/domain"
)

// ErrUnparseableResponse means the model's reply survived none of the
// repair steps.
var ErrUnparseableResponse = errors.New("quizgen: could not parse model response as questions")

// LLMConfig points at an OpenAI-compatible chat-completions endpoint.
type LLMConfig struct {
	BaseURL string // e.g. https://api.openai.com/v1
	APIKey  string
	Model   string
}

// LLMClient generates quiz questions through a language-model API. Calls
// carry no client-side timeout or retry; callers decide how failures are
// handled (the generator falls back to the seed bank).
type LLMClient struct {
	cfg  LLMConfig
	http *http.Client
}

func NewLLMClient(cfg LLMConfig) *LLMClient {
	return &LLMClient{
		cfg:  cfg,
		http: &http.Client{},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateQuestions asks the model for n multiple-choice questions about a
// language and parses the reply through the repair chain.
func (c *LLMClient) GenerateQuestions(
	ctx context.Context,
	language string,
	n int,
) ([]domain.Question, error) {
	prompt := fmt.Sprintf(
		"Generate %d multiple-choice quiz questions about the %s programming language. "+
			"Respond with only a JSON array where each element has the fields "+
			`"question", "options" (4 strings), "correctAnswer" (index into options) and "explanation".`,
		n, language,
	)

	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quizgen: model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quizgen: model returned status %d: %s", resp.StatusCode, snippet)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("quizgen: bad completion envelope: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("quizgen: completion contained no choices")
	}

	return decodeQuestions(parsed.Choices[0].Message.Content)
}

// decodeQuestions runs the JSON repair chain over raw model output:
// direct parse, then with markdown code fences stripped, then the first
// bracketed array extracted from surrounding prose.
func decodeQuestions(raw string) ([]domain.Question, error) {
	candidates := []string{raw, stripCodeFences(raw)}
	if arr := extractArray(raw); arr != "" {
		candidates = append(candidates, arr)
	}

	for _, candidate := range candidates {
		var questions []domain.Question
		if err := json.Unmarshal([]byte(candidate), &questions); err != nil {
			continue
		}
		if valid := filterValid(questions); len(valid) > 0 {
			return valid, nil
		}
	}

	return nil, ErrUnparseableResponse
}

// stripCodeFences removes a ```json ... ``` (or plain ```) wrapper.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractArray pulls the outermost [...] span out of surrounding prose.
func extractArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func filterValid(questions []domain.Question) []domain.Question {
	valid := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Question == "" || len(q.Options) == 0 {
			continue
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			continue
		}
		valid = append(valid, q)
	}
	return valid
}
