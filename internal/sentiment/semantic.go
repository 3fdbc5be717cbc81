package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/seenimoa/tickersense/internal/llm"
	"github.com/seenimoa/tickersense/pkg/models"
)

// MaxScoredArticles caps how many articles are sent to the semantic scorer.
const MaxScoredArticles = 15

// SemanticResult is the overall assessment returned by a semantic scorer.
type SemanticResult struct {
	Score              float64  `json:"score"` // -1..1
	PositiveIndicators []string `json:"positive_indicators"`
	NegativeIndicators []string `json:"negative_indicators"`
	Reasoning          string   `json:"reasoning"`
}

// SemanticScorer produces an overall sentiment score for an article set.
// Implementations may be slow or unreliable; the engine falls back to the
// local lexicon average when scoring fails.
type SemanticScorer interface {
	ScoreArticles(ctx context.Context, symbol string, articles []models.Article) (*SemanticResult, error)
}

// LLMScorer scores articles with a chat-completion model.
type LLMScorer struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewLLMScorer wraps an llm.Provider as a SemanticScorer. A zero timeout
// defaults to 30 seconds.
func NewLLMScorer(provider llm.Provider, timeout time.Duration) *LLMScorer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMScorer{provider: provider, timeout: timeout}
}

const scorerSystemPrompt = `You are a financial news sentiment analyst. Given recent news articles about a stock, respond with a single JSON object and nothing else:
{"score": <float -1.0 to 1.0>, "positive_indicators": [<short phrases>], "negative_indicators": [<short phrases>], "reasoning": <one or two sentences>}`

// ScoreArticles sends the newest articles (capped at MaxScoredArticles) to
// the model and parses its JSON verdict.
func (s *LLMScorer) ScoreArticles(ctx context.Context, symbol string, articles []models.Article) (*SemanticResult, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("llm scorer: no articles to score")
	}

	sorted := make([]models.Article, len(articles))
	copy(sorted, articles)
	models.SortArticlesByDate(sorted)
	if len(sorted) > MaxScoredArticles {
		sorted = sorted[:MaxScoredArticles]
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.Chat(ctx, []llm.Message{
		llm.SystemMessage(scorerSystemPrompt),
		llm.UserMessage(buildScorerPrompt(symbol, sorted)),
	}, &llm.ChatOptions{Temperature: 0.1})
	if err != nil {
		return nil, err
	}

	result, err := parseSemanticResult(resp.Content)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func buildScorerPrompt(symbol string, articles []models.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recent news for %s, newest first:\n\n", symbol)
	now := time.Now()
	for i, a := range articles {
		fmt.Fprintf(&b, "%d. %s", i+1, a.Title)
		if !a.PublishedAt.IsZero() {
			fmt.Fprintf(&b, " (%s ago)", now.Sub(a.PublishedAt).Round(time.Hour))
		}
		b.WriteString("\n")
		if a.Description != "" {
			fmt.Fprintf(&b, "   %s\n", a.Description)
		}
	}
	b.WriteString("\nAssess the overall sentiment for the stock.")
	return b.String()
}

// parseSemanticResult extracts the JSON object from a model reply, tolerating
// markdown fences and surrounding prose.
func parseSemanticResult(content string) (*SemanticResult, error) {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("llm scorer: no JSON object in reply")
	}

	var result SemanticResult
	if err := json.Unmarshal([]byte(content[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("llm scorer: parse reply: %w", err)
	}
	if result.Score > 1 {
		result.Score = 1
	}
	if result.Score < -1 {
		result.Score = -1
	}
	return &result, nil
}
