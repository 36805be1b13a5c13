// Package scoring produces SEO and grammar quality scores for asset body
// content. Scores come from a remote scoring endpoint when it is reachable
// and from a deterministic-range local heuristic otherwise. A per-draft
// debouncer drives automatic re-scoring while body content is being edited.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// ScoresPath is the remote scoring endpoint path.
const ScoresPath = "/assetLibrary/ai-scores"

// ErrEmptyContent is returned when there is no body text to analyze.
var ErrEmptyContent = errors.New("body content is empty")

// ScoreResult holds one scoring outcome. Both scores are in [0,100].
type ScoreResult struct {
	SEOScore     float64 `json:"seo_score"`
	GrammarScore float64 `json:"grammar_score"`
}

// scoreRequest is the payload sent to the remote scoring endpoint.
type scoreRequest struct {
	Content     string `json:"content"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Analyzer scores body content. The zero value is not usable; construct via
// NewAnalyzer. The random source is injected so tests can fix the seed.
type Analyzer struct {
	baseURL string
	client  *http.Client
	rand    func() float64
	logger  *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithHTTPClient sets the HTTP client used for the remote call.
func WithHTTPClient(c *http.Client) AnalyzerOption {
	return func(a *Analyzer) { a.client = c }
}

// WithRand sets the uniform [0,1) random source used by the local fallback.
func WithRand(r func() float64) AnalyzerOption {
	return func(a *Analyzer) { a.rand = r }
}

// WithLogger sets the analyzer logger.
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer targeting the given scoring base URL.
// An empty base URL disables the remote path entirely.
func NewAnalyzer(baseURL string, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		rand:    rand.Float64,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores the given body content. The local fallback scores are
// computed unconditionally first; the remote scores overwrite them only on
// a successful (2xx) response. Remote failures are logged and swallowed, so
// the caller always gets scores for non-empty content.
func (a *Analyzer) Analyze(ctx context.Context, content, title, description string) (ScoreResult, error) {
	if strings.TrimSpace(content) == "" {
		return ScoreResult{}, ErrEmptyContent
	}

	result := a.localScores(content)

	if a.baseURL == "" {
		return result, nil
	}

	remote, err := a.remoteScores(ctx, content, title, description)
	if err != nil {
		a.logger.Warn("remote scoring failed, using local scores", "error", err)
		return result, nil
	}
	return remote, nil
}

// LocalScores computes the deterministic-range local heuristic:
// lengthScore = min(80, len/10), seo = min(100, lengthScore + U(0,20)),
// grammar = min(100, floor(U(60,100))).
func (a *Analyzer) localScores(content string) ScoreResult {
	lengthScore := math.Min(80, math.Floor(float64(len(content))/10))
	seo := math.Min(100, lengthScore+a.rand()*20)
	grammar := math.Min(100, math.Floor(60+a.rand()*40))
	return ScoreResult{SEOScore: seo, GrammarScore: grammar}
}

func (a *Analyzer) remoteScores(ctx context.Context, content, title, description string) (ScoreResult, error) {
	body, err := json.Marshal(scoreRequest{Content: content, Title: title, Description: description})
	if err != nil {
		return ScoreResult{}, fmt.Errorf("encoding score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+ScoresPath, bytes.NewReader(body))
	if err != nil {
		return ScoreResult{}, fmt.Errorf("creating score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("calling scoring endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ScoreResult{}, fmt.Errorf("scoring endpoint returned status %d", resp.StatusCode)
	}

	var result ScoreResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ScoreResult{}, fmt.Errorf("decoding score response: %w", err)
	}
	return result, nil
}
