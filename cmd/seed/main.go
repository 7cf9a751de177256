package main

import (
	"context"
	"fmt"
	"log"

	"sokoni/internal/models"
	"sokoni/internal/repository"
	"sokoni/internal/service"
	"sokoni/pkg/config"
	"sokoni/pkg/logger"
	"sokoni/pkg/postgres"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	embeddingService := service.NewEmbeddingService(&cfg.Embedding, appLogger)

	appLogger.Info("Starting database seeding")

	categoryIDs, err := seedCategories(ctx, categoryRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed categories", zap.Error(err))
	}

	if err := seedProducts(ctx, productRepo, embeddingService, categoryIDs, appLogger); err != nil {
		appLogger.Fatal("Failed to seed products", zap.Error(err))
	}

	appLogger.Info("Database seeding completed")
}

func seedCategories(ctx context.Context, repo *repository.CategoryRepository) (map[string]int, error) {
	categories := []models.Category{
		{Name: "Electronics", Description: "Phones, laptops, TVs and accessories"},
		{Name: "Footwear", Description: "Shoes, sneakers, sandals and boots"},
		{Name: "Home & Kitchen", Description: "Appliances, furniture and kitchenware"},
		{Name: "Fashion", Description: "Clothing and accessories for everyone"},
	}

	ids := make(map[string]int, len(categories))
	for i := range categories {
		if err := repo.Create(ctx, &categories[i]); err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", categories[i].Name, err)
		}
		ids[categories[i].Name] = categories[i].ID
	}
	return ids, nil
}

func seedProducts(
	ctx context.Context,
	repo *repository.ProductRepository,
	embedder *service.EmbeddingService,
	categoryIDs map[string]int,
	logger *zap.Logger,
) error {
	products := []struct {
		category string
		product  models.Product
	}{
		{"Electronics", models.Product{Name: "43-inch Smart TV", Description: "Full HD smart television with streaming apps", Price: 320, Rating: 4.3, Stock: 12}},
		{"Electronics", models.Product{Name: "Wireless Earbuds", Description: "Bluetooth earbuds with noise cancellation", Price: 45, Rating: 4.1, Stock: 80}},
		{"Electronics", models.Product{Name: "Gaming Laptop", Description: "15-inch laptop with dedicated graphics", Price: 1100, Rating: 4.6, Stock: 5}},
		{"Footwear", models.Product{Name: "Canvas Sneakers", Description: "Lightweight everyday sneakers", Price: 30, Rating: 4.0, Stock: 60}},
		{"Footwear", models.Product{Name: "Trail Running Shoes", Description: "Grippy running shoes for rough terrain", Price: 85, Rating: 4.5, Stock: 25}},
		{"Home & Kitchen", models.Product{Name: "Electric Kettle", Description: "1.7 litre fast-boil kettle", Price: 22, Rating: 3.9, Stock: 40}},
		{"Home & Kitchen", models.Product{Name: "Blender", Description: "High-speed blender for smoothies and soups", Price: 55, Rating: 4.2, Stock: 18}},
		{"Fashion", models.Product{Name: "Denim Jacket", Description: "Classic denim jacket, unisex fit", Price: 48, Rating: 4.4, Stock: 35}},
	}

	for i := range products {
		entry := &products[i]
		entry.product.BusinessID = "seed"
		entry.product.CategoryID = categoryIDs[entry.category]

		if err := repo.Create(ctx, &entry.product); err != nil {
			return fmt.Errorf("failed to create product %q: %w", entry.product.Name, err)
		}

		// Backfill the embedding; products without one simply stay out of
		// the vector search path.
		text := entry.product.Name + " " + entry.product.Description
		vector, err := embedder.Embed(ctx, text)
		if err != nil {
			logger.Warn("Skipping embedding backfill",
				zap.String("product", entry.product.Name),
				zap.Error(err),
			)
			continue
		}
		if err := repo.UpdateEmbedding(ctx, entry.product.ID, pgvector.NewVector(vector)); err != nil {
			logger.Warn("Failed to store embedding",
				zap.String("product", entry.product.Name),
				zap.Error(err),
			)
		}
	}

	logger.Info("Seeded products", zap.Int("count", len(products)))
	return nil
}
