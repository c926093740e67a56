// Package switchctl is a small device-control library: a Switch drives
// whatever Device was injected into it, without knowing the concrete type.
// The worker uses it to flip a warning light when deliveries start failing
// for good, but any Device implementation can be substituted.
package switchctl

// Device is the capability a Switch depends on.
type Device interface {
	// TurnOn powers the device up.
	TurnOn() error
}

// Switch is the high-level component. It holds exactly one injected Device
// and never constructs one itself.
type Switch struct {
	device Device
}

// NewSwitch creates a Switch controlling the given device.
func NewSwitch(device Device) *Switch {
	return &Switch{device: device}
}

// Press turns the held device on.
func (s *Switch) Press() error {
	return s.device.TurnOn()
}
