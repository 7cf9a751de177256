package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// SearchRepository is the read path of the query pipeline. It never writes:
// statements arriving at ExecuteReadOnly have already passed the sanitizer,
// and the remaining methods build their own SELECTs.
type SearchRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSearchRepository(db *pgxpool.Pool, logger *zap.Logger) *SearchRepository {
	return &SearchRepository{
		db:     db,
		logger: logger,
	}
}

// ExecuteReadOnly runs a sanitized statement and materializes each row as a
// column-name to value mapping.
func (r *SearchRepository) ExecuteReadOnly(ctx context.Context, sql string) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		r.logger.Error("Failed to execute search query",
			zap.Error(err),
			zap.String("query", sql),
		)
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// SearchByEmbedding ranks products by L2 distance to the query embedding,
// restricted to rows that have an embedding at all.
func (r *SearchRepository) SearchByEmbedding(ctx context.Context, embedding pgvector.Vector, limit int) ([]map[string]any, error) {
	sql := `SELECT p.id, p.name, p.description, p.price, p.rating, c.name AS category_name
		FROM products p
		JOIN categories c ON p.category = c.id
		WHERE p.embedding IS NOT NULL
		ORDER BY p.embedding <-> $1
		LIMIT $2`

	rows, err := r.db.Query(ctx, sql, &embedding, limit)
	if err != nil {
		r.logger.Error("Vector similarity search failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute similarity search: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// KeywordSearch is the fallback when the vector path is unavailable: an
// ILIKE OR-search over name and description, best-rated first.
func (r *SearchRepository) KeywordSearch(ctx context.Context, terms []string, limit int) ([]map[string]any, error) {
	query := squirrel.Select("p.id", "p.name", "p.description", "p.price", "p.rating", "c.name AS category_name").
		From("products p").
		Join("categories c ON p.category = c.id").
		OrderBy("p.rating DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	conditions := squirrel.Or{}
	for _, term := range terms {
		pattern := "%" + term + "%"
		conditions = append(conditions,
			squirrel.ILike{"p.name": pattern},
			squirrel.ILike{"p.description": pattern},
		)
	}
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build keyword search: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error("Keyword search failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute keyword search: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func collectRows(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()

	results := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}

		row := make(map[string]any, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return results, nil
}
