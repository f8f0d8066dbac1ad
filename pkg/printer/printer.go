package printer

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer types accepted by Open.
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeNone    = "none"
)

const defaultTimeout = 5 * time.Second

// ErrUnavailable wraps every failure to reach the printer hardware.
var ErrUnavailable = errors.New("printer unavailable")

// Printer sends ESC/POS jobs to a thermal receipt printer.
type Printer interface {
	// Print sends one complete job. Jobs never interleave.
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

// Config selects and addresses the receipt printer.
type Config struct {
	Type    string        // usb, network or none
	USBPath string        // device file, e.g. /dev/usb/lp0
	Address string        // host:port, e.g. 192.168.1.100:9100
	Timeout time.Duration // network dial and write budget
}

// Open returns the printer described by cfg. A printer that cannot be
// configured is replaced by the null printer so the till keeps billing;
// the error explains the fallback.
func Open(cfg Config) (Printer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	switch cfg.Type {
	case TypeUSB:
		if cfg.USBPath == "" {
			return NewNullPrinter(), errors.New("printer: PRINTER_USB_PATH is required for a usb printer")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case TypeNetwork:
		if _, _, err := net.SplitHostPort(cfg.Address); err != nil {
			return NewNullPrinter(), fmt.Errorf("printer: PRINTER_ADDRESS %q must be host:port: %w", cfg.Address, err)
		}
		return NewNetworkPrinter(cfg.Address, timeout), nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return NewNullPrinter(), fmt.Errorf("printer: unknown PRINTER_TYPE %q (use usb, network or none)", cfg.Type)
	}
}

// usbPrinter writes each job to a character device opened per job, so a
// printer unplugged between bills recovers on the next one.
type usbPrinter struct {
	mu   sync.Mutex
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrUnavailable, p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	info, err := os.Stat(p.path)
	return err == nil && !info.IsDir()
}

// networkPrinter dials a raw TCP (JetDirect) port once per job.
type networkPrinter struct {
	mu      sync.Mutex
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP to address
// (host:port). timeout bounds both the dial and the write.
func NewNetworkPrinter(address string, timeout time.Duration) Printer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &networkPrinter{address: address, timeout: timeout}
}

func (p *networkPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrUnavailable, p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout/2)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullPrinter accepts and discards every job.
type nullPrinter struct{}

// NewNullPrinter creates a printer for tills without hardware.
func NewNullPrinter() Printer { return nullPrinter{} }

func (nullPrinter) Print(data []byte) error { return nil }
func (nullPrinter) Close() error            { return nil }
func (nullPrinter) IsConnected() bool       { return false }
