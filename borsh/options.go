package borsh

// MaxPacketSize is the largest transaction payload the network accepts.
// Layouts without a static span are encoded into a buffer of this size.
const MaxPacketSize = 1232

// Options configures codec construction.
type Options struct {
	// MaxPacketSize bounds encoding of layouts without a static span.
	MaxPacketSize int
	// DeprecatedState derives state discriminators in the "account" namespace.
	DeprecatedState bool
}

// DefaultOptions returns default codec configuration.
func DefaultOptions() Options {
	return Options{
		MaxPacketSize: MaxPacketSize,
	}
}

func (o Options) packetSize() int {
	if o.MaxPacketSize <= 0 {
		return MaxPacketSize
	}
	return o.MaxPacketSize
}
