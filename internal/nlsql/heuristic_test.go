package nlsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicQuery(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		contains    []string
		notContains []string
	}{
		{
			name:     "price constraint with keyword",
			message:  "headphones under 100",
			contains: []string{"p.price < 100", "headphones", ") AND "},
		},
		{
			name:     "currency suffix stripped from price token",
			message:  "shoes below 500kes",
			contains: []string{"p.price < 500", "shoes"},
		},
		{
			name:     "dollar sign stripped from price token",
			message:  "laptop under $1000",
			contains: []string{"p.price < 1000", "laptop"},
		},
		{
			name:        "short words ignored",
			message:     "a red tv for me",
			contains:    []string{"1=1"},
			notContains: []string{"ILIKE '%red%'"},
		},
		{
			name:     "no content words defaults to match-all",
			message:  "ok",
			contains: []string{"WHERE 1=1"},
		},
		{
			name:     "single quotes escaped",
			message:  "men's jackets",
			contains: []string{"men''s"},
		},
		{
			name:        "numeric tokens are not search terms",
			message:     "phones under 250.50",
			contains:    []string{"p.price < 250.5", "phones"},
			notContains: []string{"'%250.50%'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := HeuristicQuery(tt.message)

			for _, want := range tt.contains {
				assert.Contains(t, query, want)
			}
			for _, notWant := range tt.notContains {
				assert.NotContains(t, query, notWant)
			}

			// Every heuristic query is bounded and read-only.
			assert.Contains(t, query, "LIMIT 10")
			assert.Contains(t, query, "JOIN categories c ON p.category = c.id")
			assert.Equal(t, query, Sanitize(query))
		})
	}
}
