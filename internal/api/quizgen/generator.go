// Package quizgen produces per-language quizzes, either from the static
// seed bank or through a language-model API with the seed bank as fallback.
package quizgen

import (
	"context"
	"errors"
	"strings"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/pkg/slogx"
)

// DefaultQuizSize is the number of questions in a full quiz.
const DefaultQuizSize = 40

var ErrUnsupportedLanguage = errors.New("quizgen: unsupported language")

// Generator builds quizzes. With a nil LLM it serves the seed bank only.
type Generator struct {
	LLM *LLMClient
}

// Generate returns total questions for a language. LLM failures fall back
// to the seed bank; an unknown language is a client error either way, so
// the seed bank acts as the language whitelist.
func (g *Generator) Generate(
	ctx context.Context,
	language string,
	total int,
) ([]domain.Question, error) {
	lang := CanonicalLanguage(language)
	seed, ok := seedBank[lang]
	if !ok {
		return nil, ErrUnsupportedLanguage
	}

	if total <= 0 {
		total = DefaultQuizSize
	}

	if g.LLM != nil {
		questions, err := g.LLM.GenerateQuestions(ctx, lang, total)
		if err == nil {
			if len(questions) > total {
				questions = questions[:total]
			}
			return questions, nil
		}
		slogx.FromContext(ctx).Warn("llm generation failed, serving seed bank",
			"language", lang, "err", err)
	}

	return synthesize(seed, total), nil
}

// GenerateOne returns a single question for a language.
func (g *Generator) GenerateOne(ctx context.Context, language string) (domain.Question, error) {
	questions, err := g.Generate(ctx, language, 1)
	if err != nil {
		return domain.Question{}, err
	}
	return questions[0], nil
}

// Languages reports the supported language keys.
func (g *Generator) Languages() []string {
	out := make([]string, 0, len(seedBank))
	for lang := range seedBank {
		out = append(out, lang)
	}
	return out
}

// CanonicalLanguage lowercases and trims a language key. Empty input means
// the default language, java.
func CanonicalLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		lang = "java"
	}
	return lang
}
