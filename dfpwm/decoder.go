// Package dfpwm decodes the DFPWM1a variant produced by the project's
// encoder: one bit per sample, LSB first, 48 kHz mono. Each bit tells the
// predictor whether the signal charge moves up or down; the step size grows
// while consecutive bits agree and shrinks when they flip.
package dfpwm

// DefaultSampleRate is the rate the encoder resamples everything to.
const DefaultSampleRate = 48000

const (
	maxStrength = 63
	maxCharge   = 127
	minCharge   = -128
)

// Decoder reconstructs audio samples from a DFPWM bit stream. The predictor
// state carries across Decode calls within one stream, so a Decoder must
// never be reused for a different byte stream: create one per opened source.
type Decoder struct {
	charge   int
	strength int
	prevBit  bool
}

// New returns a decoder with fresh predictor state.
func New() *Decoder {
	return &Decoder{}
}

// Decode converts a chunk of DFPWM bytes into mono samples in [-1, 1].
// Every input byte yields exactly 8 samples.
func (d *Decoder) Decode(chunk []byte) []float32 {
	out := make([]float32, 0, len(chunk)*8)
	for _, b := range chunk {
		for i := 0; i < 8; i++ {
			bit := b&(1<<i) != 0

			if bit == d.prevBit {
				d.strength++
			} else {
				d.strength--
			}
			if d.strength < 0 {
				d.strength = 0
			}
			if d.strength > maxStrength {
				d.strength = maxStrength
			}

			change := d.strength<<2 + 2
			if bit {
				d.charge += change
			} else {
				d.charge -= change
			}
			if d.charge > maxCharge {
				d.charge = maxCharge
			}
			if d.charge < minCharge {
				d.charge = minCharge
			}

			d.prevBit = bit
			out = append(out, float32(d.charge)/128)
		}
	}
	return out
}
