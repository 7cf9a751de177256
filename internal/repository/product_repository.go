package repository

import (
	"context"
	"fmt"
	"time"

	"sokoni/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// productColumns deliberately leaves out the embedding vector; it is written
// by UpdateEmbedding and only ever read through SearchRepository.
var productColumns = []string{
	"id", "business_id", "name", "description", "price", "rating",
	"category", "stock", "image_url", "created_at", "updated_at",
}

type ProductRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProductRepository(db *pgxpool.Pool, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := squirrel.Insert("products").
		Columns("business_id", "name", "description", "price", "rating", "category", "stock", "image_url", "created_at", "updated_at").
		Values(product.BusinessID, product.Name, product.Description, product.Price, product.Rating,
			product.CategoryID, product.Stock, product.ImageURL, product.CreatedAt, product.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&product.ID); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := squirrel.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var product models.Product
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&product.ID, &product.BusinessID, &product.Name, &product.Description,
		&product.Price, &product.Rating, &product.CategoryID, &product.Stock,
		&product.ImageURL, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, limit int) ([]*models.Product, error) {
	query := squirrel.Select(productColumns...).
		From("products").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(
			&product.ID, &product.BusinessID, &product.Name, &product.Description,
			&product.Price, &product.Rating, &product.CategoryID, &product.Stock,
			&product.ImageURL, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	query := squirrel.Update("products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("rating", product.Rating).
		Set("category", product.CategoryID).
		Set("stock", product.Stock).
		Set("image_url", product.ImageURL).
		Set("updated_at", product.UpdatedAt).
		Where(squirrel.Eq{"id": product.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", product.ID)
	}
	return nil
}

// UpdateEmbedding backfills the vector column for one product.
func (r *ProductRepository) UpdateEmbedding(ctx context.Context, id int, embedding pgvector.Vector) error {
	query := squirrel.Update("products").
		Set("embedding", &embedding).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update embedding for product %d: %w", id, err)
	}
	return nil
}
