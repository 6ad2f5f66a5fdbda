package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/enum"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterSettings describes the configured slip printer
type PrinterSettings struct {
	Type      string
	Width     int
	StoreName string
}

// PrinterService formats receipts as slips and sends them to the thermal printer
type PrinterService struct {
	tm       repository.TransactionManager
	device   printer.Printer
	settings PrinterSettings
	logger   *zap.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(tm repository.TransactionManager, device printer.Printer, settings PrinterSettings, logger *zap.Logger) *PrinterService {
	return &PrinterService{
		tm:       tm,
		device:   device,
		settings: settings,
		logger:   logger.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus probes the printer
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.settings.Type != "none" && s.settings.Type != "",
		Connected:  s.device.Connected(ctx),
		Type:       s.settings.Type,
	}
}

// PrintReceipt loads a receipt and prints it. When the device fails the
// composed slip is still returned along with the error.
func (s *PrinterService) PrintReceipt(ctx context.Context, receiptID uuid.UUID) (*entity.Slip, error) {
	var receipt *entity.Receipt
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		var err error
		receipt, err = loadReceiptWithDetails(ctx, repos, receiptID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slip := BuildSlip(receipt, s.settings.StoreName)
	if err := s.device.Print(ctx, FormatSlip(slip, s.settings.Width)); err != nil {
		s.logger.Error("print failed", zap.Stringer("receipt_id", receiptID), zap.Error(err))
		return slip, errors.Wrap(err, "print receipt")
	}

	s.logger.Info("receipt printed", zap.Stringer("receipt_id", receiptID), zap.Int("items", len(slip.Items)))
	return slip, nil
}

// SlipNumber derives the short printed number of a receipt
func SlipNumber(id uuid.UUID) string {
	return "R-" + strings.ToUpper(id.String()[:8])
}

// BuildSlip composes the printable view of a receipt loaded with its details
func BuildSlip(r *entity.Receipt, storeName string) *entity.Slip {
	slip := &entity.Slip{
		Header:   entity.SlipHeader{StoreName: storeName},
		Number:   SlipNumber(r.ID),
		Date:     r.OperationDate.Format("2006-01-02 15:04"),
		Discount: r.Discount(),
		Status:   enum.ReceiptStatusOf(r.IsCheckedOut),
		Items:    make([]entity.SlipItem, 0, len(r.Lines)),
		Total:    r.Total(),
	}
	if r.Customer != nil {
		slip.Customer = strings.TrimSpace(r.Customer.Person.Name + " " + r.Customer.Person.Surname)
	}

	for i := range r.Lines {
		line := &r.Lines[i]
		name := "Product"
		if line.Product != nil && line.Product.Name != "" {
			name = line.Product.Name
		}
		slip.Items = append(slip.Items, entity.SlipItem{
			Name:              name,
			Quantity:          line.Quantity,
			UnitPrice:         line.UnitPrice,
			DiscountUnitPrice: line.DiscountUnitPrice,
			Total:             line.Total(),
		})
	}
	return slip
}

// FormatSlip renders a slip as an ESC/POS job
func FormatSlip(slip *entity.Slip, width int) []byte {
	t := printer.NewTicket(width)

	t.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(slip.Header.StoreName).
		Size(printer.SizeNormal).
		Bold(false).
		Align(printer.AlignLeft).
		Rule('-')

	t.Columns("Receipt:", slip.Number).
		Columns("Date:", slip.Date)
	if slip.Customer != "" {
		t.Columns("Customer:", slip.Customer)
	}
	if slip.Discount > 0 {
		t.Columns("Discount:", strconv.Itoa(slip.Discount)+"%")
	}
	t.Rule('-')

	for _, item := range slip.Items {
		t.Columns(strconv.Itoa(item.Quantity)+"x "+item.Name, item.Total.StringFixed(2))
		if item.Quantity > 1 || !item.DiscountUnitPrice.Equal(item.UnitPrice) {
			t.Linef("  @ %s (list %s)", item.DiscountUnitPrice.StringFixed(2), item.UnitPrice.StringFixed(2))
		}
	}

	t.Rule('-').
		Bold(true).
		Columns("TOTAL:", slip.Total.StringFixed(2)).
		Bold(false)
	if !slip.Status.IsCheckedOut() {
		t.Line("** OPEN RECEIPT **")
	}

	t.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your purchase!").
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return t.Bytes()
}
