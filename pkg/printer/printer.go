package printer

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Printer sends raw ESC/POS bytes to a printing surface.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

// Printer types accepted by New.
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeFile    = "file"
	TypeNone    = "none"
)

// Config selects and configures a Printer.
type Config struct {
	Type     string
	USBPath  string
	Address  string
	SpoolDir string
}

// New creates the Printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case TypeUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case TypeNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(cfg.Address), nil
	case TypeFile:
		if cfg.SpoolDir == "" {
			return nil, fmt.Errorf("printer: spool directory is required for file printer type")
		}
		return NewFilePrinter(cfg.SpoolDir)
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, file or none)", cfg.Type)
	}
}

// usbPrinter writes to a character device such as /dev/usb/lp0. The device is
// opened per job.
type usbPrinter struct {
	path string
}

func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP port (usually 9100) per job.
type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address:      address,
		dialTimeout:  5 * time.Second,
		writeTimeout: 10 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// FilePrinter spools every job into its own .bin file. Useful on terminals
// where a separate process forwards the spool to the device.
type FilePrinter struct {
	mu  sync.Mutex
	dir string
	seq int
	now func() time.Time
}

func NewFilePrinter(dir string) (*FilePrinter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("printer: create spool dir %s: %w", dir, err)
	}
	return &FilePrinter{dir: dir, now: time.Now}, nil
}

func (p *FilePrinter) Print(data []byte) error {
	p.mu.Lock()
	p.seq++
	name := fmt.Sprintf("receipt-%s-%04d.bin", p.now().Format("20060102T150405"), p.seq)
	p.mu.Unlock()

	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("printer: write spool file %s: %w", path, err)
	}
	return nil
}

func (p *FilePrinter) Close() error { return nil }

func (p *FilePrinter) IsConnected() bool {
	info, err := os.Stat(p.dir)
	return err == nil && info.IsDir()
}

// nullPrinter discards everything; used when no printer is configured.
type nullPrinter struct{}

func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error { return nil }

func (p *nullPrinter) Close() error { return nil }

func (p *nullPrinter) IsConnected() bool { return false }
