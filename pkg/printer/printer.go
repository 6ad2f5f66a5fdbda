package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer delivers a raw ESC/POS job to a device
type Printer interface {
	Print(ctx context.Context, job []byte) error
	// Connected probes the device
	Connected(ctx context.Context) bool
}

// Config selects and addresses the device
type Config struct {
	Type    string // usb, network or none
	USBPath string // e.g. /dev/usb/lp0
	Address string // host:port, usually port 9100
	Timeout time.Duration
}

// New builds the Printer described by cfg
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb path is required for usb printers")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return &networkPrinter{address: cfg.Address, timeout: timeout}, nil
	case "none", "":
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q (use usb, network or none)", cfg.Type)
	}
}

// usbPrinter writes each job to a character device
type usbPrinter struct {
	mu   sync.Mutex
	path string
}

func (p *usbPrinter) Print(_ context.Context, job []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Connected(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter opens one TCP connection per job
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.timeout}
	return d.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, job []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))
	if _, err := conn.Write(job); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Connected(ctx context.Context) bool {
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Discard drops every job. It is used when no device is configured.
type Discard struct{}

func (Discard) Print(context.Context, []byte) error { return nil }
func (Discard) Connected(context.Context) bool      { return false }

// Recorder keeps every job in memory
type Recorder struct {
	mu   sync.Mutex
	jobs [][]byte
	Err  error
}

func (r *Recorder) Print(_ context.Context, job []byte) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, append([]byte(nil), job...))
	return nil
}

func (r *Recorder) Connected(context.Context) bool { return r.Err == nil }

// Jobs returns the recorded jobs in print order
func (r *Recorder) Jobs() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.jobs...)
}
