package assets

import (
	"encoding/binary"
	"math"
)

// Sweep renders a sine glide from fromHz to toHz as 16-bit little-endian
// stereo PCM, the format audio.Context.NewPlayerFromBytes expects. The tail
// fades out to avoid a click.
func Sweep(sampleRate int, fromHz, toHz, seconds, volume float64) []byte {
	n := int(float64(sampleRate) * seconds)
	if n <= 0 {
		return nil
	}
	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := fromHz + (toHz-fromHz)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		env := 1.0
		if t > 0.8 {
			env = (1 - t) / 0.2
		}
		v := int16(math.Sin(phase) * volume * env * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
