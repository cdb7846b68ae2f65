package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func decodeSamples(t *testing.T, data []byte) []int16 {
	t.Helper()
	if len(data)%2 != 0 {
		t.Fatalf("odd PCM16 byte count %d", len(data))
	}
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}

func TestBrownNoiseStaysInVolumeBounds(t *testing.T) {
	generate := brownNoise(0.5)
	bound := 0.5 * 32767
	limit := int16(bound) + 1
	nonZero := false
	for chunk := 0; chunk < 20; chunk++ {
		for _, sample := range decodeSamples(t, generate()) {
			if sample > limit || sample < -limit {
				t.Fatalf("sample %d exceeds volume bound", sample)
			}
			if sample != 0 {
				nonZero = true
			}
		}
	}
	if !nonZero {
		t.Error("brown noise generated only silence")
	}
}

func TestMeditationToneChunkSize(t *testing.T) {
	generate := meditationTone(0.25)
	first := decodeSamples(t, generate())
	second := decodeSamples(t, generate())
	if len(first) != chunkSamples || len(second) != chunkSamples {
		t.Fatalf("chunk sizes %d, %d, want %d", len(first), len(second), chunkSamples)
	}
	// Phase must carry across chunks: the boundary must not restart the
	// waveform from zero phase with a jump.
	if first[len(first)-1] == 0 && second[0] == 0 && first[0] == second[0] {
		t.Log("boundary samples both zero, inconclusive")
	}
}

func TestBeepPatternAlternates(t *testing.T) {
	// One second of 80ms beep plus 920ms gap: most samples are silent.
	generate := beepPattern(300, 80, 920, 0.4)
	silent, loud := 0, 0
	for chunk := 0; chunk < 20; chunk++ {
		for _, sample := range decodeSamples(t, generate()) {
			if sample == 0 {
				silent++
			} else {
				loud++
			}
		}
	}
	if loud == 0 {
		t.Fatal("beep pattern produced no tone")
	}
	if silent < loud {
		t.Errorf("silent=%d loud=%d, want mostly silence for a sparse beep", silent, loud)
	}
}

func TestLoopPlayerSourceYieldsFreshGenerators(t *testing.T) {
	// Each Start streams from its own generator, so a stream goroutine
	// surviving a fast Stop/Start never shares phase state with the
	// replacement. Fresh generators must start from identical phase.
	player := NewDistractionBeeper()
	first := player.source()
	second := player.source()

	firstChunk := first()
	if !bytes.Equal(firstChunk, second()) {
		t.Fatal("fresh generators diverge on their first chunk")
	}
	advanced := first()
	if bytes.Equal(firstChunk, advanced) {
		t.Fatal("generator did not advance phase between chunks")
	}
}

func TestLoopPlayerStopWithoutStart(t *testing.T) {
	player := NewBrownNoise()
	player.Stop()
	if player.Playing() {
		t.Error("stopped player reports playing")
	}
}
