package nlsql

import (
	"regexp"
	"strings"
)

// An extractStrategy pulls candidate SELECT statements out of free-form model
// output. Strategies are tried in order; the first one that yields anything
// wins. Each is a pure function, independently testable.
type extractStrategy func(content string) []string

var extractionChain = []extractStrategy{
	extractAnchoredSelect,
	extractProductsSelect,
	extractFencedSelect,
}

var (
	// Anchored to the column list the system prompt mandates.
	anchoredSelectRe = regexp.MustCompile(`(?is)SELECT\s+p\.id,\s*p\.name.*?LIMIT\s+\d+\s*;?`)

	// Any SELECT over the products table that carries a LIMIT.
	productsSelectRe = regexp.MustCompile(`(?is)SELECT\s+.*?FROM\s+products.*?LIMIT\s+\d+\s*;?`)

	fencedBlockRe  = regexp.MustCompile("(?s)```(?:sql)?(.*?)```")
	limitSelectRe  = regexp.MustCompile(`(?is)SELECT\s+.*?LIMIT\s+\d+\s*;?`)
	anySelectRe    = regexp.MustCompile(`(?is)SELECT\s+.*?;`)
	openSelectRe   = regexp.MustCompile(`(?is)SELECT\s+.*?FROM\s+.*?(?:WHERE|ORDER BY|LIMIT|$)`)
	sqlFenceMarkRe = regexp.MustCompile("```sql|```")
)

// ExtractQuery applies the recovery chain to malformed model output and
// returns the first SELECT statement found, or "" when nothing matched.
func ExtractQuery(content string) string {
	for _, strategy := range extractionChain {
		if queries := strategy(content); len(queries) > 0 {
			return terminate(queries[0])
		}
	}
	return ""
}

// ExtractQueries collects every SELECT statement present in the output, used
// by dual-query mode. Statements with trailing semicolons are preferred; an
// open-ended scan is the last resort.
func ExtractQueries(content string) []string {
	matches := anySelectRe.FindAllString(content, -1)
	if len(matches) == 0 {
		matches = openSelectRe.FindAllString(content, -1)
	}

	var queries []string
	for _, m := range matches {
		q := strings.TrimSpace(sqlFenceMarkRe.ReplaceAllString(m, ""))
		if q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}

func extractAnchoredSelect(content string) []string {
	if m := anchoredSelectRe.FindString(content); m != "" {
		return []string{strings.TrimSpace(m)}
	}
	return nil
}

func extractProductsSelect(content string) []string {
	if m := productsSelectRe.FindString(content); m != "" {
		return []string{strings.TrimSpace(m)}
	}
	return nil
}

func extractFencedSelect(content string) []string {
	for _, block := range fencedBlockRe.FindAllStringSubmatch(content, -1) {
		body := block[1]
		upper := strings.ToUpper(body)
		if !strings.Contains(upper, "SELECT") || !strings.Contains(upper, "FROM") {
			continue
		}
		if m := limitSelectRe.FindString(body); m != "" {
			return []string{strings.TrimSpace(m)}
		}
	}
	return nil
}

func terminate(query string) string {
	if !strings.HasSuffix(query, ";") {
		query += ";"
	}
	return query
}
