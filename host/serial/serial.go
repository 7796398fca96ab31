package serial

import "io"

// Port is the controller link as the host sees it. The native
// implementation wraps a real serial device; tests substitute an in-memory
// pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush discards buffered data on the device.
	Flush() error
}

// Config holds serial port parameters.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC devices ignore this.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the usual settings for a USB-attached controller.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 500,
	}
}
