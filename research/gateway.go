package research

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// model is the Gemini model used for every request shape. Search-grounded
// calls can take tens of seconds to minutes; the flash model keeps that
// tolerable.
const model = "gemini-2.5-flash"

// Gateway implements Researcher against the Gemini API.
type Gateway struct {
	client  *genai.Client
	limiter *rate.Limiter
}

// NewGateway creates the gateway. The genai client reads GEMINI_API_KEY from
// the environment. Requests are rate limited to stay under the API quota when
// refreshing a whole portfolio or topic board at once.
func NewGateway(ctx context.Context) (*Gateway, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not initialize Gemini client: %w", err)
	}
	return &Gateway{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 4),
	}, nil
}

// generate sends a single prompt and returns the raw text answer. The
// GoogleSearch tool is attached for search-grounded request shapes.
func (g *Gateway) generate(ctx context.Context, prompt string, search bool) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var config *genai.GenerateContentConfig
	if search {
		config = &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty answer from gateway")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// StockAnalysis researches a single stock by name.
func (g *Gateway) StockAnalysis(ctx context.Context, name string, lang Language) (*StockAnalysis, error) {
	prompt := strings.ReplaceAll(stockAnalysisPrompt, "{STOCK_NAME}", name)
	raw, err := g.generate(ctx, prompt+"\n"+langInstruction(lang), true)
	if err != nil {
		return nil, err
	}

	var analysis StockAnalysis
	if err := decodeJSON(raw, &analysis); err != nil {
		// Schema mismatch: salvage what we can before reporting failure.
		salvaged, serr := salvageStockAnalysis(raw)
		if serr != nil {
			return nil, fmt.Errorf("stock analysis for %q: %w", name, err)
		}
		log.Printf("stock analysis for %q: salvaged partial answer", name)
		return salvaged, nil
	}
	return &analysis, nil
}

// MarketSentiment fetches the whole-market dashboard snapshot.
func (g *Gateway) MarketSentiment(ctx context.Context, lang Language) (*MarketSentiment, error) {
	today := time.Now().Format("2006-01-02")
	prompt := marketSentimentPrompt + "\nTODAY: " + today + "\n" + langInstruction(lang)
	raw, err := g.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}
	var sentiment MarketSentiment
	if err := decodeJSON(raw, &sentiment); err != nil {
		return nil, fmt.Errorf("market sentiment: %w", err)
	}
	return &sentiment, nil
}

// TopicAnalysis researches a thematic investment keyword.
func (g *Gateway) TopicAnalysis(ctx context.Context, keyword string, lang Language) (*TopicAnalysis, error) {
	prompt := topicAnalysisPrompt + "\n" + langInstruction(lang) + "\nTarget Topic: " + keyword
	raw, err := g.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}
	var analysis TopicAnalysis
	if err := decodeJSON(raw, &analysis); err != nil {
		return nil, fmt.Errorf("topic analysis for %q: %w", keyword, err)
	}
	return &analysis, nil
}

// ReflectionAnalysis coaches a single journal entry. No search grounding: the
// input is the user's own text.
func (g *Gateway) ReflectionAnalysis(ctx context.Context, entry string, lang Language) (*ReflectionAnalysis, error) {
	prompt := reflectionAnalysisPrompt + "\n" + langInstruction(lang) + "\nUser Note: " + fmt.Sprintf("%q", entry)
	raw, err := g.generate(ctx, prompt, false)
	if err != nil {
		return nil, err
	}
	var analysis ReflectionAnalysis
	if err := decodeJSON(raw, &analysis); err != nil {
		return nil, fmt.Errorf("reflection analysis: %w", err)
	}
	return &analysis, nil
}

// ReflectionSummary summarizes a batch of journal entries.
func (g *Gateway) ReflectionSummary(ctx context.Context, entries []string, lang Language) (*ReflectionSummary, error) {
	var notes strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&notes, "%d. %s\n", i+1, entry)
	}
	prompt := reflectionSummaryPrompt + "\n" + langInstruction(lang) + "\nUser Notes:\n" + notes.String()
	raw, err := g.generate(ctx, prompt, false)
	if err != nil {
		return nil, err
	}
	var summary ReflectionSummary
	if err := decodeJSON(raw, &summary); err != nil {
		return nil, fmt.Errorf("reflection summary: %w", err)
	}
	return &summary, nil
}
