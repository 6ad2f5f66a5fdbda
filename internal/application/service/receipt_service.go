package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutPrinter prints a receipt after it has been checked out
type CheckoutPrinter interface {
	PrintReceipt(ctx context.Context, receiptID uuid.UUID) (*entity.Slip, error)
}

// ReceiptOptions tunes the receipt engine
type ReceiptOptions struct {
	// StrictCheckout rejects line changes on a checked-out receipt.
	// By default they are allowed.
	StrictCheckout bool
	// Printer, when set, prints every receipt right after checkout
	Printer CheckoutPrinter
}

// ReceiptService owns the receipt aggregate: lines, checkout and totals
type ReceiptService struct {
	tm     repository.TransactionManager
	opts   ReceiptOptions
	locks  *keyedMutex
	logger *zap.Logger
	now    func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(tm repository.TransactionManager, opts ReceiptOptions, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		tm:     tm,
		opts:   opts,
		locks:  newKeyedMutex(),
		logger: logger.Named("receipts"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetAll returns every receipt
func (s *ReceiptService) GetAll(ctx context.Context) ([]model.ReceiptModel, error) {
	var out []model.ReceiptModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipts, err := repos.NewReceiptRepository().GetAllWithDetails(ctx)
		if err != nil {
			return err
		}
		out = model.FromReceipts(receipts)
		return nil
	})
	return out, err
}

// GetByID returns one receipt
func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*model.ReceiptModel, error) {
	var out model.ReceiptModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipt, err := loadReceiptWithDetails(ctx, repos, id)
		if err != nil {
			return err
		}
		out = model.FromReceipt(receipt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create stores a new open receipt without lines
func (s *ReceiptService) Create(ctx context.Context, m *model.ReceiptModel) (*model.ReceiptModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		CustomerID:    m.CustomerID,
		OperationDate: m.OperationDate,
	}
	if receipt.OperationDate.IsZero() {
		receipt.OperationDate = s.now()
	}

	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := ensureCustomer(ctx, repos, m.CustomerID); err != nil {
			return err
		}
		return repos.NewReceiptRepository().Create(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("receipt created",
		zap.Stringer("receipt_id", receipt.ID),
		zap.Stringer("customer_id", receipt.CustomerID),
	)
	out := model.FromReceipt(receipt)
	return &out, nil
}

// Update copies the header fields of m onto the stored receipt. Lines are untouched.
func (s *ReceiptService) Update(ctx context.Context, m *model.ReceiptModel) (*model.ReceiptModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	var out model.ReceiptModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipts := repos.NewReceiptRepository()
		receipt, err := receipts.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewNotFoundError("Receipt")
		}
		if receipt.CustomerID != m.CustomerID {
			if err := ensureCustomer(ctx, repos, m.CustomerID); err != nil {
				return err
			}
		}

		receipt.CustomerID = m.CustomerID
		if !m.OperationDate.IsZero() {
			receipt.OperationDate = m.OperationDate
		}
		// checked out is terminal
		receipt.IsCheckedOut = receipt.IsCheckedOut || m.IsCheckedOut
		if err := receipts.Update(ctx, receipt); err != nil {
			return err
		}

		updated, err := loadReceiptWithDetails(ctx, repos, m.ID)
		if err != nil {
			return err
		}
		out = model.FromReceipt(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the receipt and all of its lines
func (s *ReceiptService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipts := repos.NewReceiptRepository()
		receipt, err := receipts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewNotFoundError("Receipt")
		}
		if err := repos.NewReceiptLineRepository().DeleteByReceiptID(ctx, id); err != nil {
			return err
		}
		return receipts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("receipt deleted", zap.Stringer("receipt_id", id))
	return nil
}

// AddProduct puts quantity units of a product on the receipt. An existing line for
// the product is merged and keeps its prices; a new line freezes the current
// product price and the customer's discount.
func (s *ReceiptService) AddProduct(ctx context.Context, productID, receiptID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return apperror.NewInvalidArgumentError("Quantity must be greater than zero")
	}

	unlock := s.locks.Lock(receiptID)
	defer unlock()

	return s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipt, err := s.lockOpenReceipt(ctx, repos, receiptID)
		if err != nil {
			return err
		}

		lines := repos.NewReceiptLineRepository()
		if line := receipt.Line(productID); line != nil {
			if line.Quantity > math.MaxInt-quantity {
				return apperror.NewInvalidArgumentError("Quantity is too large")
			}
			line.Quantity += quantity
			return lines.Update(ctx, line)
		}

		product, err := repos.NewProductRepository().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}

		line := &entity.ReceiptLine{
			ReceiptID:         receipt.ID,
			ProductID:         product.ID,
			Quantity:          quantity,
			UnitPrice:         product.Price,
			DiscountUnitPrice: entity.DiscountedPrice(product.Price, receipt.Discount()),
		}
		lm := model.FromReceiptLine(line)
		if err := lm.Validate(); err != nil {
			return err
		}
		return lines.Create(ctx, line)
	})
}

// RemoveProduct takes quantity units of a product off the receipt. The line is
// deleted once its quantity would drop to zero or below.
func (s *ReceiptService) RemoveProduct(ctx context.Context, productID, receiptID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return apperror.NewInvalidArgumentError("Quantity must be greater than zero")
	}

	unlock := s.locks.Lock(receiptID)
	defer unlock()

	return s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipt, err := s.lockOpenReceipt(ctx, repos, receiptID)
		if err != nil {
			return err
		}

		line := receipt.Line(productID)
		if line == nil {
			return apperror.NewNotFoundError("Receipt detail")
		}

		lines := repos.NewReceiptLineRepository()
		if line.Quantity <= quantity {
			return lines.Delete(ctx, line.ID)
		}
		line.Quantity -= quantity
		return lines.Update(ctx, line)
	})
}

func (s *ReceiptService) lockOpenReceipt(ctx context.Context, repos repository.RepositoryFactory, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := repos.NewReceiptRepository().GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if s.opts.StrictCheckout && receipt.IsCheckedOut {
		return nil, apperror.NewDomainError("Receipt is already checked out")
	}
	return receipt, nil
}

// CheckOut marks the receipt as checked out. Checking out twice is a no-op.
func (s *ReceiptService) CheckOut(ctx context.Context, receiptID uuid.UUID) error {
	unlock := s.locks.Lock(receiptID)
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipts := repos.NewReceiptRepository()
		receipt, err := receipts.GetByID(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewNotFoundError("Receipt")
		}
		receipt.IsCheckedOut = true
		return receipts.Update(ctx, receipt)
	})
	unlock()
	if err != nil {
		return err
	}

	s.logger.Info("receipt checked out", zap.Stringer("receipt_id", receiptID))

	if s.opts.Printer != nil {
		if _, err := s.opts.Printer.PrintReceipt(ctx, receiptID); err != nil {
			s.logger.Warn("checkout print failed", zap.Stringer("receipt_id", receiptID), zap.Error(err))
		}
	}
	return nil
}

// ToPay returns the sum of quantity * discounted unit price over the receipt lines
func (s *ReceiptService) ToPay(ctx context.Context, receiptID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipt, err := loadReceiptWithDetails(ctx, repos, receiptID)
		if err != nil {
			return err
		}
		total = receipt.Total()
		return nil
	})
	return total, err
}

// GetReceiptDetails returns the lines of a receipt
func (s *ReceiptService) GetReceiptDetails(ctx context.Context, receiptID uuid.UUID) ([]model.ReceiptLineModel, error) {
	var out []model.ReceiptLineModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipt, err := loadReceiptWithDetails(ctx, repos, receiptID)
		if err != nil {
			return err
		}
		out = model.FromReceiptLines(receipt.Lines)
		return nil
	})
	return out, err
}

// GetReceiptsByPeriod returns receipts with start <= operation date <= end
func (s *ReceiptService) GetReceiptsByPeriod(ctx context.Context, start, end time.Time) ([]model.ReceiptModel, error) {
	var out []model.ReceiptModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		receipts, err := repos.NewReceiptRepository().GetByPeriodWithDetails(ctx, start, end)
		if err != nil {
			return err
		}
		out = model.FromReceipts(receipts)
		return nil
	})
	return out, err
}

func loadReceiptWithDetails(ctx context.Context, repos repository.RepositoryFactory, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := repos.NewReceiptRepository().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

func ensureCustomer(ctx context.Context, repos repository.RepositoryFactory, id uuid.UUID) error {
	customer, err := repos.NewCustomerRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return nil
}
