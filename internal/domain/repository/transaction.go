package repository

import "context"

// TransactionManager runs a unit of work.
// If fn returns an error the transaction is rolled back, otherwise it is committed once.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current unit of work
type RepositoryFactory interface {
	NewCustomerRepository() CustomerRepository
	NewProductRepository() ProductRepository
	NewCategoryRepository() CategoryRepository
	NewReceiptRepository() ReceiptRepository
	NewReceiptLineRepository() ReceiptLineRepository
}
