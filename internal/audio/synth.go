// Package audio synthesizes the intervention soundscapes and plays them
// through an external playback process. All audio is mono PCM16 generated
// on the fly; there are no sound assets.
package audio

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// SampleRate is the output rate for all generated audio.
const SampleRate = 44100

// chunkSamples is the generator granularity, about 50ms per chunk so Stop
// takes effect quickly.
const chunkSamples = SampleRate / 20

// generator produces successive PCM16 chunks of an endless sound.
type generator func() []byte

// pcmBytes converts samples to little-endian PCM16 wire format.
func pcmBytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(sample))
	}
	return data
}

// brownNoise integrates white noise into a low-rumble random walk. The
// leak term keeps the walk centered, the clamp keeps it in range.
func brownNoise(volume float64) generator {
	level := 0.0
	rng := rand.New(rand.NewSource(1))
	return func() []byte {
		samples := make([]int16, chunkSamples)
		for i := range samples {
			level += (rng.Float64()*2 - 1) * 0.02
			level *= 0.998
			if level > 1 {
				level = 1
			} else if level < -1 {
				level = -1
			}
			samples[i] = int16(level * volume * math.MaxInt16)
		}
		return pcmBytes(samples)
	}
}

// meditationTone is a soft low sine with a slow amplitude swell, roughly
// one breath cycle per swell.
func meditationTone(volume float64) generator {
	const toneHz = 136.1
	const swellHz = 0.1
	phase := 0.0
	swell := 0.0
	return func() []byte {
		samples := make([]int16, chunkSamples)
		for i := range samples {
			amplitude := volume * (0.55 + 0.45*math.Sin(swell))
			samples[i] = int16(math.Sin(phase) * amplitude * math.MaxInt16)
			phase += 2 * math.Pi * toneHz / SampleRate
			swell += 2 * math.Pi * swellHz / SampleRate
		}
		return pcmBytes(samples)
	}
}

// beepPattern emits a repeating beep-then-silence cycle.
func beepPattern(freqHz float64, beepMillis, gapMillis int, volume float64) generator {
	beepSamples := SampleRate * beepMillis / 1000
	gapSamples := SampleRate * gapMillis / 1000
	cycle := make([]int16, beepSamples+gapSamples)
	for i := 0; i < beepSamples; i++ {
		// Short attack/release ramps avoid clicks at the beep edges.
		envelope := 1.0
		ramp := SampleRate / 200
		if i < ramp {
			envelope = float64(i) / float64(ramp)
		} else if remaining := beepSamples - i; remaining < ramp {
			envelope = float64(remaining) / float64(ramp)
		}
		cycle[i] = int16(math.Sin(2*math.Pi*freqHz*float64(i)/SampleRate) * envelope * volume * math.MaxInt16)
	}

	offset := 0
	return func() []byte {
		samples := make([]int16, chunkSamples)
		for i := range samples {
			samples[i] = cycle[offset]
			offset = (offset + 1) % len(cycle)
		}
		return pcmBytes(samples)
	}
}
