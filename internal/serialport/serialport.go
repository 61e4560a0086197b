// Package serialport enumerates USB serial adapters for the device
// picker. Only USB-backed ports are reported; PCI and virtual ports
// are filtered out.
package serialport

import (
	"github.com/cockroachdb/errors"
	"go.bug.st/serial/enumerator"
)

// Port describes one USB serial port. IDs are positions in the full
// port enumeration, so an ID keeps pointing at the same OS port even
// when non-USB ports interleave with USB ones.
type Port struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

// List enumerates the USB serial ports currently present.
func List() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating serial ports")
	}
	return usbPorts(details), nil
}

// usbPorts filters an enumeration down to USB ports, keeping each
// port's index in the full list as its ID and falling back to
// "unknown" when the device reports no product string.
func usbPorts(details []*enumerator.PortDetails) []Port {
	ports := make([]Port, 0, len(details))
	for i, d := range details {
		if !d.IsUSB {
			continue
		}
		desc := d.Product
		if desc == "" {
			desc = "unknown"
		}
		ports = append(ports, Port{
			ID:    i,
			Label: d.Name,
			Desc:  desc,
		})
	}
	return ports
}
