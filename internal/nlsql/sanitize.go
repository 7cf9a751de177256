package nlsql

import (
	"regexp"
	"strings"
)

// SafeFallbackQuery replaces any statement that trips the denylist.
const SafeFallbackQuery = "SELECT * FROM products LIMIT 5"

// Keyword denylist, matched case-insensitively anywhere in the statement.
// This is advisory hardening, not a parser-level guarantee: obfuscated
// statements (comments, encodings) can slip through. The database role used
// by the executor must itself be read-only.
var disallowedKeywords = []string{
	"DROP",
	"DELETE",
	"UPDATE",
	"INSERT",
	"ALTER",
	"TRUNCATE",
	"GRANT",
	"REVOKE",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

var slashReplacer = strings.NewReplacer(`\`, "", "/", "")

// Sanitize rejects statements containing mutating keywords, substituting the
// fixed safe fallback, and otherwise returns the input with slashes stripped
// and whitespace collapsed. Pure and idempotent.
func Sanitize(rawSQL string) string {
	cleaned := slashReplacer.Replace(rawSQL)

	upper := strings.ToUpper(cleaned)
	for _, keyword := range disallowedKeywords {
		if strings.Contains(upper, keyword) {
			return SafeFallbackQuery
		}
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
}
