package nlsql

import (
	"encoding/json"
	"strings"
)

// Intent is the normalized outcome of one synthesizer round trip: a
// natural-language reply plus at least one candidate SQL statement. The
// parser guarantees both fields are populated for every possible input.
type Intent struct {
	Response string
	Queries  []string
}

// Query returns the primary candidate statement.
func (i Intent) Query() string {
	if len(i.Queries) == 0 {
		return DefaultTopRatedQuery
	}
	return i.Queries[0]
}

// completionPayload mirrors both JSON shapes the model may produce: the
// single-query variant ("query", historically "sql_query") and the dual-query
// variant ("queries").
type completionPayload struct {
	Response string   `json:"response"`
	Query    string   `json:"query"`
	SQLQuery string   `json:"sql_query"`
	Queries  []string `json:"queries"`
}

// DefaultIntent is the canned result substituted when the model call itself
// fails (network error, non-200, empty completion).
func DefaultIntent(mode Mode) Intent {
	return normalize(Intent{Response: ApologyResponse}, mode)
}

// ParseCompletion turns raw model output into an Intent. Well-formed JSON is
// taken as-is with defaults filled in for missing keys; anything else goes
// through the recovery ladder: regex extraction first, then a heuristic query
// built from the original user message.
func ParseCompletion(content, userMessage string, mode Mode) Intent {
	var payload completionPayload
	if err := json.Unmarshal([]byte(content), &payload); err == nil {
		return normalize(intentFromPayload(payload), mode)
	}
	return recoverIntent(content, userMessage, mode)
}

func intentFromPayload(payload completionPayload) Intent {
	intent := Intent{Response: payload.Response}
	for _, q := range payload.Queries {
		if strings.TrimSpace(q) != "" {
			intent.Queries = append(intent.Queries, strings.TrimSpace(q))
		}
	}
	if len(intent.Queries) == 0 {
		for _, q := range []string{payload.Query, payload.SQLQuery} {
			if strings.TrimSpace(q) != "" {
				intent.Queries = []string{strings.TrimSpace(q)}
				break
			}
		}
	}
	return intent
}

func recoverIntent(content, userMessage string, mode Mode) Intent {
	// The reply is taken from the first paragraph of the free-form output.
	response := strings.TrimSpace(strings.SplitN(content, "\n\n", 2)[0])
	if len(response) < 20 {
		response = "Here are some products that might match your search."
	}

	var queries []string
	if mode == ModeDual {
		queries = ExtractQueries(content)
	} else if q := ExtractQuery(content); q != "" {
		queries = []string{q}
	}

	if len(queries) == 0 && strings.TrimSpace(userMessage) != "" {
		queries = []string{HeuristicQuery(userMessage)}
	}

	return normalize(Intent{Response: response, Queries: queries}, mode)
}

// normalize enforces the parser's output guarantee: non-empty response, at
// least one query, and in dual mode exactly two (padded with the recency
// variant when only one was produced).
func normalize(intent Intent, mode Mode) Intent {
	if strings.TrimSpace(intent.Response) == "" {
		intent.Response = DefaultResponse
	}
	if len(intent.Queries) == 0 {
		intent.Queries = []string{DefaultTopRatedQuery}
	}

	if mode == ModeDual {
		if len(intent.Queries) == 1 {
			intent.Queries = append(intent.Queries, DefaultRecentQuery)
		}
		intent.Queries = intent.Queries[:2]
	} else {
		intent.Queries = intent.Queries[:1]
	}
	return intent
}
