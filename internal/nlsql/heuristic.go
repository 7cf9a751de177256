package nlsql

import (
	"fmt"
	"strconv"
	"strings"
)

var priceKeywords = map[string]bool{
	"below":   true,
	"under":   true,
	"less":    true,
	"cheaper": true,
	"max":     true,
	"maximum": true,
}

// HeuristicQuery builds a search statement straight from the user message when
// every extraction strategy has failed. Price-constraint keywords followed by
// a numeric token become a price filter; remaining content words longer than
// three characters become an OR-chain of ILIKE conditions over product and
// category fields.
func HeuristicQuery(message string) string {
	tokens := strings.Fields(strings.ToLower(message))

	var priceFilter string
	for i, word := range tokens {
		if !priceKeywords[word] || i+1 >= len(tokens) {
			continue
		}
		next := strings.ReplaceAll(tokens[i+1], "kes", "")
		next = strings.TrimSpace(strings.ReplaceAll(next, "$", ""))
		if value, err := strconv.ParseFloat(next, 64); err == nil {
			priceFilter = fmt.Sprintf("p.price < %v", value)
		}
	}

	var conditions []string
	for _, word := range tokens {
		if len(word) <= 3 || priceKeywords[word] || isNumeric(word) {
			continue
		}
		term := strings.ReplaceAll(word, "'", "''")
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE '%%%s%%' OR p.description ILIKE '%%%s%%' OR c.name ILIKE '%%%s%%' OR c.description ILIKE '%%%s%%')",
			term, term, term, term,
		))
	}

	whereClause := strings.Join(conditions, " OR ")
	switch {
	case priceFilter != "" && whereClause != "":
		whereClause = fmt.Sprintf("(%s) AND %s", whereClause, priceFilter)
	case priceFilter != "":
		whereClause = priceFilter
	case whereClause == "":
		whereClause = "1=1"
	}

	return fmt.Sprintf(
		"SELECT p.id, p.name, p.image_url, p.description, p.price, p.rating, c.name AS category_name FROM products p JOIN categories c ON p.category = c.id WHERE %s ORDER BY p.rating DESC LIMIT 10;",
		whereClause,
	)
}

func isNumeric(word string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(word, ".", ""), 64)
	return err == nil
}
