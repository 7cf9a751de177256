package nlsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBlocksMutatingStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"drop", "DROP TABLE products;"},
		{"delete lowercase", "delete from products where id = 1"},
		{"update mixed case", "UpDaTe products SET price = 0"},
		{"insert", "INSERT INTO products VALUES (1)"},
		{"alter", "ALTER TABLE products ADD COLUMN x int"},
		{"truncate", "TRUNCATE products"},
		{"grant", "GRANT ALL ON products TO public"},
		{"revoke", "REVOKE ALL ON products FROM public"},
		{"keyword embedded in select", "SELECT * FROM products; DROP TABLE products;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, SafeFallbackQuery, Sanitize(tt.sql))
		})
	}
}

func TestSanitizePassesReadOnlyStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "plain select untouched",
			sql:  "SELECT * FROM products LIMIT 10",
			want: "SELECT * FROM products LIMIT 10",
		},
		{
			name: "whitespace collapsed",
			sql:  "SELECT  *\n\tFROM   products\n LIMIT 10",
			want: "SELECT * FROM products LIMIT 10",
		},
		{
			name: "slashes stripped",
			sql:  `SELECT * FROM products WHERE name ILIKE '%tv\%' LIMIT 5`,
			want: "SELECT * FROM products WHERE name ILIKE '%tv%' LIMIT 5",
		},
		{
			name: "surrounding whitespace trimmed",
			sql:  "  SELECT id FROM categories  ",
			want: "SELECT id FROM categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.sql))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"SELECT * FROM products LIMIT 10",
		"DROP TABLE products;",
		"SELECT  p.id,\n p.name FROM products p JOIN categories c ON p.category = c.id LIMIT 10;",
		"",
		"not sql at all",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "input: %q", input)
	}
}

func TestSanitizeFallbackIsItselfClean(t *testing.T) {
	assert.Equal(t, SafeFallbackQuery, Sanitize(SafeFallbackQuery))
}
