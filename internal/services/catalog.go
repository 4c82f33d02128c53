package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gunungclimbing/storefront/internal/cache"
	appErrors "github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/models"
	repository "github.com/gunungclimbing/storefront/internal/repositories"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type catalogService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	fallback []*models.Product
}

// NewCatalogService builds the catalog read side. The repo and cache may be
// nil; the service then answers from the built-in fallback catalog so the
// storefront keeps rendering when the database is unreachable.
func NewCatalogService(repo repository.ProductRepository, productCache cache.Cache) CatalogService {
	return &catalogService{
		repo:     repo,
		cache:    productCache,
		fallback: fallbackCatalog(),
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	if s.cache != nil {
		var cached []*models.Product

		found, err := s.cache.Get(ctx, cache.CatalogKey, &cached)
		if err != nil {
			slog.Warn("Catalog cache read failed", slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	if s.repo == nil {
		return s.activeFallback(), nil
	}

	products, err := s.repo.ListProducts(ctx, true)
	if err != nil {
		slog.Warn("Catalog query failed, serving fallback products", slog.String("error", err.Error()))

		return s.activeFallback(), nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CatalogKey, products, 0); err != nil {
			slog.Warn("Catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if s.repo != nil {
		product, err := s.repo.GetProductByID(ctx, id)
		if err == nil {
			return product, nil
		}

		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		slog.Warn("Product query failed, checking fallback catalog",
			slog.String("productId", id), slog.String("error", err.Error()))
	}

	for _, product := range s.fallback {
		if product.ID == id {
			return product, nil
		}
	}

	return nil, appErrors.NotFoundError("Product not found")
}

func (s *catalogService) activeFallback() []*models.Product {
	var active []*models.Product

	for _, product := range s.fallback {
		if product.IsActive {
			active = append(active, product)
		}
	}

	return active
}

// fallbackCatalog is the hardcoded product list the storefront ships with.
// It mirrors the seeded database rows and is only served when the catalog
// store is unavailable.
func fallbackCatalog() []*models.Product {
	ukSizes := func(stock int) []models.Size {
		labels := []string{"UK 5", "UK 6", "UK 7", "UK 8", "UK 9", "UK 10"}
		sizes := make([]models.Size, 0, len(labels))

		for _, label := range labels {
			sizes = append(sizes, models.Size{Label: label, Stock: stock})
		}

		return sizes
	}

	return []*models.Product{
		{
			ID:          "jett-qc",
			Name:        "Jett QC",
			Description: "High-performance climbing shoe built for steep terrain and precise footwork.",
			Details:     "The Jett QC pairs a downturned last with a sticky full-length rubber outsole for power on overhangs without giving up edging precision. A quick-cinch closure locks the heel in for toe hooks.",
			Price:       52999,
			Currency:    "myr",
			Image:       "/images/products/jett-qc.jpg",
			IsActive:    true,
			Sizes:       ukSizes(10),
		},
		{
			ID:          "gunung-ascent-tee",
			Name:        "Gunung Ascent Tee",
			Description: "Premium cotton blend t-shirt designed for comfort on and off the crag.",
			Details:     "The Gunung Ascent Tee is crafted from a breathable, heavyweight cotton blend that stands up to the abrasion of the rock while keeping you cool. Featuring a relaxed fit for unrestricted movement and our signature mountain motif on the back.",
			Price:       3500,
			Currency:    "myr",
			Image:       "/images/products/tee.jpg",
			IsActive:    true,
		},
		{
			ID:          "gunung-chalk-bag",
			Name:        "Gunung Chalk Bag",
			Description: "Hand-stitched chalk bag with fleece lining and secure closure.",
			Details:     "Keep your hands dry and your focus sharp. Our chalk bag features a stiffened rim for easy access, a soft fleece lining to hold chalk effectively, and a tight closure system to prevent spills in your pack. Includes a brush loop and waist belt.",
			Price:       8900,
			Currency:    "myr",
			Image:       "/images/products/chalk-bag.jpg",
			IsActive:    true,
		},
	}
}
