package max3010x

// Sample is one FIFO entry of a multi-LED sensor. In the classic modes the
// first slot holds the red LED and the second the IR LED; in multi-LED mode
// the slots follow the configured order. Slots past the active count are 0.
// A sample is only meaningful when Valid is true.
type Sample struct {
	Slot  [4]uint32
	Valid bool
}

// Red returns the red LED reading of a sample taken in a classic mode.
func (s Sample) Red() uint32 {
	return s.Slot[0]
}

// IR returns the IR LED reading of a sample taken in SpO2 mode.
func (s Sample) IR() uint32 {
	return s.Slot[1]
}

// Decode fills dst with big-endian values of width bytes each, taken from
// consecutive chunks of data.
func Decode(data []byte, width int, dst []uint32) {
	for i := range dst {
		var v uint32
		for _, b := range data[i*width : (i+1)*width] {
			v = v<<8 | uint32(b)
		}
		dst[i] = v
	}
}
