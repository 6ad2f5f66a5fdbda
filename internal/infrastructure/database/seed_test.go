package database

import (
	"context"
	"testing"

	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	tm := memory.NewStore().NewTransactionManager()
	logger := zaptest.NewLogger(t)

	require.NoError(t, SeedDemoData(ctx, tm, logger))
	// a second run leaves the catalog alone
	require.NoError(t, SeedDemoData(ctx, tm, logger))

	err := tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		categories, err := repos.NewCategoryRepository().GetAllWithDetails(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 3)

		products, err := repos.NewProductRepository().GetAllWithDetails(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		for _, p := range products {
			assert.NotNil(t, p.CategoryID, p.Name)
			assert.True(t, p.Price.IsPositive(), p.Name)
		}

		customers, err := repos.NewCustomerRepository().GetAllWithDetails(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, 10, customers[0].DiscountValue)
		return nil
	})
	require.NoError(t, err)
}
