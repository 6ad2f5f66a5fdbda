package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/domain/enum"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/sangkips/trademarket-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newPrinterService(t *testing.T, env *testEnv, device printer.Printer, kind string) *PrinterService {
	return NewPrinterService(env.tm, device, PrinterSettings{
		Type:      kind,
		Width:     printer.DefaultWidth,
		StoreName: "Corner Shop",
	}, zaptest.NewLogger(t))
}

func TestPrinterService_PrintReceipt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})
	receiptID := env.receipt(t, env.customer(t, 10), time.Date(2024, time.May, 1, 10, 30, 0, 0, time.UTC))
	require.NoError(t, env.receipts.AddProduct(ctx, env.product(t, "Kettle", "100.00"), receiptID, 3))

	device := &printer.Recorder{}
	slip, err := newPrinterService(t, env, device, "network").PrintReceipt(ctx, receiptID)
	require.NoError(t, err)

	assert.Equal(t, "R-"+strings.ToUpper(receiptID.String()[:8]), slip.Number)
	assert.Equal(t, "2024-05-01 10:30", slip.Date)
	assert.Equal(t, "Ada Lovelace", slip.Customer)
	assert.Equal(t, 10, slip.Discount)
	assert.Equal(t, enum.ReceiptStatusOpen, slip.Status)
	require.Len(t, slip.Items, 1)
	assert.Equal(t, "Kettle", slip.Items[0].Name)
	assertMoney(t, "270.00", slip.Items[0].Total)
	assertMoney(t, "270.00", slip.Total)

	jobs := device.Jobs()
	require.Len(t, jobs, 1)
	assert.True(t, bytes.Contains(jobs[0], []byte("Corner Shop")))
	assert.True(t, bytes.Contains(jobs[0], []byte("270.00")))
	assert.True(t, bytes.Contains(jobs[0], []byte("** OPEN RECEIPT **")))
}

func TestPrinterService_PrintReceipt_DeviceFailureKeepsSlip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})
	receiptID := env.receipt(t, env.customer(t, 0), time.Now())
	offline := errors.New("offline")

	slip, err := newPrinterService(t, env, &printer.Recorder{Err: offline}, "usb").PrintReceipt(ctx, receiptID)
	assert.ErrorIs(t, err, offline)
	require.NotNil(t, slip)
	assert.Empty(t, slip.Items)
}

func TestPrinterService_PrintReceipt_NotFound(t *testing.T) {
	env := newTestEnv(t, ReceiptOptions{})
	device := &printer.Recorder{}

	slip, err := newPrinterService(t, env, device, "usb").PrintReceipt(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
	assert.Nil(t, slip)
	assert.Empty(t, device.Jobs())
}

func TestPrinterService_GetStatus(t *testing.T) {
	env := newTestEnv(t, ReceiptOptions{})

	status := newPrinterService(t, env, &printer.Recorder{}, "network").GetStatus(context.Background())
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)

	status = newPrinterService(t, env, printer.Discard{}, "none").GetStatus(context.Background())
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
}

func TestReceiptService_CheckOutWithPrinterService(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	env := newTestEnv(t, ReceiptOptions{})
	device := &printer.Recorder{}
	receipts := NewReceiptService(env.tm, ReceiptOptions{Printer: newPrinterService(t, env, device, "usb")}, logger)
	receiptID := env.receipt(t, env.customer(t, 0), time.Now())

	require.NoError(t, receipts.CheckOut(ctx, receiptID))

	jobs := device.Jobs()
	require.Len(t, jobs, 1)
	assert.False(t, bytes.Contains(jobs[0], []byte("OPEN RECEIPT")))
}

func TestFormatSlip_ClipsLongNames(t *testing.T) {
	env := newTestEnv(t, ReceiptOptions{})
	ctx := context.Background()
	receiptID := env.receipt(t, env.customer(t, 0), time.Now())
	require.NoError(t, env.receipts.AddProduct(ctx, env.product(t, strings.Repeat("Extra long product name ", 4), "1.00"), receiptID, 1))

	slip, err := newPrinterService(t, env, printer.Discard{}, "none").PrintReceipt(ctx, receiptID)
	require.NoError(t, err)

	job := FormatSlip(slip, 32)
	for _, line := range bytes.Split(job, []byte{'\n'}) {
		// strip ESC/POS control sequences that precede printable text
		text := bytes.TrimLeft(line, "\x1b\x1d@aE!V\x00\x01\x11")
		assert.LessOrEqual(t, len([]rune(string(text))), 32, "line %q", text)
	}
}
