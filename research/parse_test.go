package research

import (
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"clean object", `{"summary":"x","sentimentScore":8}`, true},
		{"fenced object", "```json\n{\"summary\":\"x\"}\n```", true},
		{"prose around object", `Sure, here is the data: {"summary":"x"} hope it helps`, true},
		{"braces inside strings", `{"summary":"uses {braces} inside"}`, true},
		{"no object at all", "I could not find any data.", false},
		{"unbalanced braces", `{"summary": "x"`, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out TopicAnalysis
			err := decodeJSON(tc.raw, &out)
			if tc.ok && err != nil {
				t.Fatalf("decodeJSON() failed: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("decodeJSON() accepted %q", tc.raw)
			}
			if tc.ok && out.Summary == "" {
				t.Errorf("summary not decoded from %q", tc.raw)
			}
		})
	}
}

func TestExtractObject(t *testing.T) {
	got, ok := extractObject(`noise {"a":{"b":"}"}} trailing`)
	if !ok {
		t.Fatal("extractObject() found nothing")
	}
	if got != `{"a":{"b":"}"}}` {
		t.Errorf("extracted %q", got)
	}
	// Escaped quotes inside strings must not end the string early.
	got, ok = extractObject(`{"a":"say \"hi\" {"}`)
	if !ok || !strings.HasSuffix(got, `}`) {
		t.Errorf("escaped-quote extraction = %q, %v", got, ok)
	}
}

func TestSalvageStockAnalysis(t *testing.T) {
	t.Run("quoted numbers and partial schema", func(t *testing.T) {
		raw := `The report: {"price":"12.5","market":"HK",
			"industry":{"name":"Autos","sentimentScore":7},
			"financials":{"netAssets":"50","lastYearNetProfit":5,"marketCap":160,"currency":"HKD"},
			"unexpected":{"shape":true}}`
		a, err := salvageStockAnalysis(raw)
		if err != nil {
			t.Fatalf("salvage failed: %v", err)
		}
		if a.Price != 12.5 || a.Market != "HK" {
			t.Errorf("price/market = %v/%q", a.Price, a.Market)
		}
		if a.Industry.Name != "Autos" || a.Industry.SentimentScore != 7 {
			t.Errorf("industry = %+v", a.Industry)
		}
		if a.Financials == nil || a.Financials.NetAssets != 50 || a.Financials.Currency != "HKD" {
			t.Errorf("financials = %+v", a.Financials)
		}
	})
	t.Run("nothing usable", func(t *testing.T) {
		if _, err := salvageStockAnalysis(`{"chatter":"hello"}`); err == nil {
			t.Fatal("expected an error for an answer with no usable fields")
		}
	})
}
