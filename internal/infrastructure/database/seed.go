package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SeedDemoData fills an empty catalog with a few categories, products and one customer
func SeedDemoData(ctx context.Context, tm repository.TransactionManager, logger *zap.Logger) error {
	seeded := false
	err := tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		categories := repos.NewCategoryRepository()
		existing, err := categories.GetAllWithDetails(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		catalog := map[string][]struct {
			name  string
			price string
		}{
			"Fruit":  {{"Apple", "1.20"}, {"Banana", "0.80"}},
			"Dairy":  {{"Milk", "1.05"}, {"Cheese", "7.90"}},
			"Bakery": {{"Bread", "2.40"}},
		}
		products := repos.NewProductRepository()
		for name, items := range catalog {
			category := &entity.ProductCategory{Name: name}
			if err := categories.Create(ctx, category); err != nil {
				return err
			}
			for _, item := range items {
				product := &entity.Product{
					CategoryID: &category.ID,
					Name:       item.name,
					Price:      decimal.RequireFromString(item.price),
				}
				if err := products.Create(ctx, product); err != nil {
					return err
				}
			}
		}

		customer := &entity.Customer{
			DiscountValue: 10,
			Person: entity.Person{
				Name:      "Demo",
				Surname:   "Customer",
				BirthDate: time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC),
			},
		}
		seeded = true
		return repos.NewCustomerRepository().Create(ctx, customer)
	})
	if err != nil {
		return errors.Wrap(err, "seed demo data")
	}

	if seeded {
		logger.Info("demo data seeded")
	}
	return nil
}
