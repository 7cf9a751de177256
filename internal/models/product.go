package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions is the fixed length of product embedding vectors.
const EmbeddingDimensions = 1024

type Product struct {
	ID          int              `db:"id"`
	BusinessID  string           `db:"business_id"`
	Name        string           `db:"name"`
	Description string           `db:"description"`
	Price       float64          `db:"price"`
	Rating      float64          `db:"rating"`
	CategoryID  int              `db:"category"`
	Stock       int              `db:"stock"`
	ImageURL    string           `db:"image_url"`
	Embedding   *pgvector.Vector `db:"embedding"` // nil until backfilled
	CreatedAt   time.Time        `db:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at"`
}
