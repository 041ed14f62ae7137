package research

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ErrUnavailable is returned when no gateway is configured.
var ErrUnavailable = errors.New("research gateway is not configured (set GEMINI_API_KEY)")

// decodeJSON decodes a model answer into v using a two-stage recovery policy:
// strip markdown fences and attempt a strict parse, then salvage the first
// well-formed JSON object found in the text, else give up.
func decodeJSON(raw string, v any) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	fragment, ok := extractObject(raw)
	if !ok {
		return fmt.Errorf("no JSON object found in gateway answer")
	}
	if err := json.Unmarshal([]byte(fragment), v); err != nil {
		return fmt.Errorf("could not parse gateway answer: %w", err)
	}
	return nil
}

// extractObject returns the first balanced {...} group in s. Braces inside
// JSON strings are accounted for, so prose around the object does not break
// the extraction.
func extractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// pickNumber reads a numeric field out of a loosely structured answer using a
// jsonpath expression. It tolerates numbers quoted as strings, which the model
// occasionally produces.
func pickNumber(doc any, path string) (float64, bool) {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

// pickString reads a string field out of a loosely structured answer.
func pickString(doc any, path string) (string, bool) {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// salvageStockAnalysis rebuilds a minimal StockAnalysis from an answer whose
// shape did not match the expected schema. Price and financial figures are the
// fields worth saving; everything else stays empty.
func salvageStockAnalysis(raw string) (*StockAnalysis, error) {
	fragment, ok := extractObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in gateway answer")
	}
	var doc any
	if err := json.Unmarshal([]byte(fragment), &doc); err != nil {
		return nil, fmt.Errorf("could not parse gateway answer: %w", err)
	}

	a := &StockAnalysis{}
	found := false
	if price, ok := pickNumber(doc, "$.price"); ok {
		a.Price = price
		found = true
	}
	if market, ok := pickString(doc, "$.market"); ok {
		a.Market = market
		found = true
	}
	if change, ok := pickNumber(doc, "$.changePercent"); ok {
		a.ChangePercent = change
	}
	if name, ok := pickString(doc, "$.industry.name"); ok {
		a.Industry.Name = name
		if score, ok := pickNumber(doc, "$.industry.sentimentScore"); ok {
			a.Industry.SentimentScore = score
		}
	}
	var fin Financials
	finFound := false
	if v, ok := pickNumber(doc, "$.financials.netAssets"); ok {
		fin.NetAssets = v
		finFound = true
	}
	if v, ok := pickNumber(doc, "$.financials.lastYearNetProfit"); ok {
		fin.LastYearNetProfit = v
		finFound = true
	}
	if v, ok := pickNumber(doc, "$.financials.marketCap"); ok {
		fin.MarketCap = v
		finFound = true
	}
	if finFound {
		if cur, ok := pickString(doc, "$.financials.currency"); ok {
			fin.Currency = cur
		}
		a.Financials = &fin
		found = true
	}
	if !found {
		return nil, fmt.Errorf("gateway answer held no usable stock fields")
	}
	return a, nil
}
