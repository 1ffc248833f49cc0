package max3010x

import "fmt"

// Registers shared by the multi-LED variants.
const (
	RegFIFOConfig   = 0x08
	RegMultiLedMode = 0x11
)

// Mode is the measurement mode of a multi-LED device.
type Mode byte

// Measurement modes. The zero Mode is the unknown state before the first
// Reset.
const (
	ModeHROnly   Mode = 0b010 // Red LED only
	ModeRedOnly  Mode = ModeHROnly
	ModeSpO2     Mode = 0b011 // Red and IR LEDs
	ModeRedIR    Mode = ModeSpO2
	ModeMultiLed Mode = 0b111 // LEDs of the multi-LED configuration
)

func (m Mode) String() string {
	switch m {
	case ModeHROnly:
		return "HR only"
	case ModeSpO2:
		return "SpO2"
	case ModeMultiLed:
		return "multi-LED"
	default:
		return fmt.Sprintf("Mode(%#b)", byte(m))
	}
}

// Slot is the code of one time slot of the multi-LED configuration. The
// variants name the codes they support.
type Slot byte

// SlotOff disables a slot.
const SlotOff Slot = 0

// enabled reports whether a slot produces FIFO data. Code 4 is the pilot
// variant of off.
func (s Slot) enabled() bool {
	return s&0b11 != 0
}

// MultiLed extends Device with the mode and slot state of the variants that
// can drive up to four LED slots. It is not safe for concurrent use.
type MultiLed struct {
	*Device[Sample]

	defaults   func() error
	mode       Mode
	configured int
}

type multiChip struct {
	m *MultiLed
}

func (c multiChip) DecodeSample(data []byte, slots int) Sample {
	s := Sample{Valid: true}
	Decode(data, c.m.v.SampleWidth, s.Slot[:slots])
	return s
}

func (c multiChip) DefaultConfiguration() error {
	return c.m.defaults()
}

// NewMultiLed returns a multi-LED device speaking to the sensor described by
// v. defaults is run at the end of every Reset and must leave the device in
// a known mode. It does not touch the bus; call Reset before use.
func NewMultiLed(bus Bus, v *Variant, defaults func() error, opts ...Option) *MultiLed {
	m := &MultiLed{defaults: defaults}
	m.Device = NewDevice[Sample](bus, v, multiChip{m}, opts...)
	m.slots = 0

	return m
}

// Reset resets the device and its mode and slot state. See Device.Reset.
func (m *MultiLed) Reset() error {
	m.mode = 0
	m.configured = 0
	m.slots = 0

	return m.Device.Reset()
}

// Mode returns the current measurement mode.
func (m *MultiLed) Mode() Mode {
	return m.mode
}

// ConfiguredSlots returns the number of slots enabled by the last multi-LED
// configuration.
func (m *MultiLed) ConfiguredSlots() int {
	return m.configured
}

// SetMode sets the measurement mode and clears the FIFO. The mode and the
// active slot count only change once the device accepted the new mode.
func (m *MultiLed) SetMode(mode Mode) error {
	var active int
	switch mode {
	case ModeHROnly:
		active = 1
	case ModeSpO2:
		active = 2
	case ModeMultiLed:
		active = m.configured
	default:
		return fmt.Errorf("max3010x: %v: %w", mode, ErrInvalidMode)
	}

	if err := m.WriteMode(byte(mode)); err != nil {
		return err
	}
	m.mode = mode
	m.slots = active
	m.conn.log.Printf("max3010x: %s mode %v, %d active slots", m.v.Name, mode, active)

	return nil
}

// SetMultiLedConfiguration assigns LEDs to the four time slots used in
// multi-LED mode and clears the FIFO. Enabled slots must start at the first
// slot without gaps; invalid configurations are rejected before the bus is
// touched.
func (m *MultiLed) SetMultiLedConfiguration(slots [4]Slot) error {
	active := 0
	for i, s := range slots {
		if byte(s) > m.v.MaxSlot {
			return fmt.Errorf("max3010x: slot %d code %d: %w", i, s, ErrInvalidSlots)
		}
		if s.enabled() {
			if active != i {
				return fmt.Errorf("max3010x: slot %d enabled after a disabled slot: %w", i, ErrInvalidSlots)
			}
			active++
		}
	}

	cfg := []byte{
		byte(slots[0]) | byte(slots[1])<<4,
		byte(slots[2]) | byte(slots[3])<<4,
	}
	if err := m.conn.WriteBytes(RegMultiLedMode, cfg...); err != nil {
		return fmt.Errorf("max3010x: could not configure slots: %w", err)
	}

	m.configured = active
	if m.mode == ModeMultiLed {
		m.slots = active
	}
	m.conn.log.Printf("max3010x: %s slots %v, %d configured", m.v.Name, slots, active)

	return m.ClearFIFO()
}

// SetLedCurrent sets the pulse amplitude of one LED in steps of 0.2 mA.
func (m *MultiLed) SetLedCurrent(led int, current byte) error {
	if led < 0 || led >= m.v.LEDs {
		return fmt.Errorf("max3010x: %s LED %d: %w", m.v.Name, led, ErrOutOfRange)
	}
	if err := m.conn.Write(m.v.LEDReg+byte(led), current); err != nil {
		return fmt.Errorf("max3010x: could not configure LED %d current: %w", led, err)
	}

	return nil
}

// LedCurrent returns the pulse amplitude of one LED in steps of 0.2 mA.
func (m *MultiLed) LedCurrent(led int) (byte, error) {
	if led < 0 || led >= m.v.LEDs {
		return 0, fmt.Errorf("max3010x: %s LED %d: %w", m.v.Name, led, ErrOutOfRange)
	}
	c, err := m.conn.Read(m.v.LEDReg + byte(led))
	if err != nil {
		return 0, fmt.Errorf("max3010x: could not read LED %d current: %w", led, err)
	}

	return c, nil
}
