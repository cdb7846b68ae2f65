package audio

import (
	"fmt"
	"io"
	"os/exec"
	"sync"

	"zenspace/internal/log"
)

// playback commands tried in order. Each reads mono PCM16 at SampleRate
// from stdin.
var playbackCommands = [][]string{
	{"ffplay", "-hide_banner", "-loglevel", "error", "-nodisp", "-f", "s16le", "-ar", "44100", "-i", "-"},
	{"aplay", "-q", "-f", "S16_LE", "-r", "44100", "-c", "1", "-"},
}

// lookupPlayback finds the first available playback command.
func lookupPlayback() ([]string, error) {
	for _, candidate := range playbackCommands {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("no audio playback command found (tried ffplay, aplay)")
}

// LoopPlayer plays an endless generated sound through a playback process.
// Start and Stop are idempotent; a playback pipeline that dies mid-stream
// is torn down and the player returns to the stopped state.
//
// Generators carry phase state, so each Start builds its own from the
// source factory. A stream goroutine outliving a fast Stop/Start then
// finishes on its own generator instead of racing the new one.
type LoopPlayer struct {
	name   string
	source func() generator

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	playing bool
}

// NewBrownNoise creates the quiet-mode masking noise player.
func NewBrownNoise() *LoopPlayer {
	return &LoopPlayer{name: "brown noise", source: func() generator { return brownNoise(0.5) }}
}

// NewMeditationTone creates the zen/breathing background tone player.
func NewMeditationTone() *LoopPlayer {
	return &LoopPlayer{name: "meditation tone", source: func() generator { return meditationTone(0.25) }}
}

// NewDistractionBeeper creates the looking-down nudge beeper.
func NewDistractionBeeper() *LoopPlayer {
	return &LoopPlayer{name: "distraction beeper", source: func() generator { return beepPattern(300, 80, 1000, 0.4) }}
}

// NewPostureBeeper creates the posture-alarm beeper, a lower and slower
// pulse than the distraction nudge.
func NewPostureBeeper() *LoopPlayer {
	return &LoopPlayer{name: "posture beeper", source: func() generator { return beepPattern(220, 120, 1600, 0.4) }}
}

// Start launches the playback process and begins streaming. Calling Start
// on a playing player is a no-op.
func (player *LoopPlayer) Start() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.playing {
		return
	}

	command, err := lookupPlayback()
	if err != nil {
		log.Warn("audio disabled", "player", player.name, "error", err)
		return
	}

	cmd := exec.Command(command[0], command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		log.Error("audio stdin pipe", "player", player.name, "error", err)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Error("audio playback start", "player", player.name, "error", err)
		return
	}

	player.cmd = cmd
	player.stdin = stdin
	player.playing = true
	go player.stream(cmd, stdin, player.source())
	log.Debug("audio started", "player", player.name, "command", command[0])
}

// stream pushes generated chunks until the pipe breaks. The playback
// process buffers ahead, so chunk pacing comes from pipe backpressure.
func (player *LoopPlayer) stream(cmd *exec.Cmd, stdin io.WriteCloser, generate generator) {
	for {
		if _, err := stdin.Write(generate()); err != nil {
			break
		}
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	// Only tear down if Stop has not already swapped in a newer pipeline.
	if player.cmd == cmd {
		player.teardownLocked()
	}
}

// Stop ends playback immediately. Calling Stop on a stopped player is a
// no-op.
func (player *LoopPlayer) Stop() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.playing {
		return
	}
	player.teardownLocked()
	log.Debug("audio stopped", "player", player.name)
}

func (player *LoopPlayer) teardownLocked() {
	if player.stdin != nil {
		_ = player.stdin.Close()
	}
	if player.cmd != nil && player.cmd.Process != nil {
		_ = player.cmd.Process.Kill()
		go player.cmd.Wait()
	}
	player.cmd = nil
	player.stdin = nil
	player.playing = false
}

// Playing reports whether the player currently has a live pipeline.
func (player *LoopPlayer) Playing() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.playing
}
