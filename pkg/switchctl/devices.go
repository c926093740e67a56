package switchctl

import "github.com/rs/zerolog"

var (
	_ Device = (*Light)(nil)
	_ Device = (*Fan)(nil)
)

// Light is a Device that reports itself through the logger. The worker wires
// one up as a dead-letter warning indicator.
type Light struct {
	logger zerolog.Logger
}

// NewLight creates a new Light.
func NewLight(logger *zerolog.Logger) *Light {
	return &Light{logger: logger.With().Str("device", "light").Logger()}
}

// TurnOn implements the Device interface.
func (l *Light) TurnOn() error {
	l.logger.Warn().Msg("light is ON")
	return nil
}

// Fan is a second Device implementation; any Switch drives it unchanged.
type Fan struct {
	logger zerolog.Logger
}

// NewFan creates a new Fan.
func NewFan(logger *zerolog.Logger) *Fan {
	return &Fan{logger: logger.With().Str("device", "fan").Logger()}
}

// TurnOn implements the Device interface.
func (f *Fan) TurnOn() error {
	f.logger.Info().Msg("fan is ON")
	return nil
}
