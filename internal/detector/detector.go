// Package detector runs the landmark inference sidecar. The heavy model
// work happens in a separate Python process; this package owns its
// lifecycle and the line-delimited JSON protocol on its pipes.
package detector

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"zenspace/internal/core/signal"
	"zenspace/internal/log"
)

// Detector produces one landmark observation per submitted frame.
type Detector interface {
	Detect(ctx context.Context, jpegFrame []byte) (signal.Observation, error)
	Close() error
}

// maxResultLine bounds one stdout line from the sidecar. A full face mesh
// with two hands and pose serializes well under this.
const maxResultLine = 4 << 20

// request is one frame submission on the sidecar's stdin.
type request struct {
	JPEG string `json:"jpeg"`
}

// response is one line on the sidecar's stdout. Either an observation or
// an error, never both.
type response struct {
	Observation *signal.Observation `json:"observation"`
	Error       string              `json:"error"`
}

// PythonDetector drives a MediaPipe sidecar script over stdin/stdout.
// Detect calls are serialized; the protocol is strict request/response.
type PythonDetector struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	results *bufio.Scanner
	closed  bool
}

// StartPython launches the sidecar script with the given interpreter and
// waits for its ready line. The process is killed when ctx is cancelled.
func StartPython(ctx context.Context, interpreter, script string) (*PythonDetector, error) {
	cmd := exec.CommandContext(ctx, interpreter, script)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("detector stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("detector stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("detector stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start detector %q: %w", script, err)
	}
	go forwardStderr(stderr)

	results := bufio.NewScanner(stdout)
	results.Buffer(make([]byte, 64*1024), maxResultLine)

	detector := &PythonDetector{cmd: cmd, stdin: stdin, results: results}
	if err := detector.awaitReady(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	log.Info("detector sidecar started", "script", script, "pid", cmd.Process.Pid)
	return detector, nil
}

// awaitReady consumes the first stdout line, which the script emits after
// its models are loaded.
func (detector *PythonDetector) awaitReady() error {
	if !detector.results.Scan() {
		if err := detector.results.Err(); err != nil {
			return fmt.Errorf("detector startup: %w", err)
		}
		return fmt.Errorf("detector exited before ready line")
	}
	var ready struct {
		Ready bool   `json:"ready"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(detector.results.Bytes(), &ready); err != nil {
		return fmt.Errorf("detector ready line: %w", err)
	}
	if ready.Error != "" {
		return fmt.Errorf("detector startup: %s", ready.Error)
	}
	if !ready.Ready {
		return fmt.Errorf("detector reported not ready")
	}
	return nil
}

// Detect submits one JPEG frame and blocks for its observation. The
// context only gates entry; a call already writing to the pipe finishes
// its round trip.
func (detector *PythonDetector) Detect(ctx context.Context, jpegFrame []byte) (signal.Observation, error) {
	if err := ctx.Err(); err != nil {
		return signal.Observation{}, err
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.closed {
		return signal.Observation{}, fmt.Errorf("detector closed")
	}

	line, err := encodeRequest(jpegFrame)
	if err != nil {
		return signal.Observation{}, err
	}
	if _, err := detector.stdin.Write(line); err != nil {
		return signal.Observation{}, fmt.Errorf("write frame to detector: %w", err)
	}

	if !detector.results.Scan() {
		if err := detector.results.Err(); err != nil {
			return signal.Observation{}, fmt.Errorf("read detector result: %w", err)
		}
		return signal.Observation{}, fmt.Errorf("detector closed its output")
	}
	return decodeResponse(detector.results.Bytes())
}

// Close shuts the sidecar down: closing stdin signals the script to exit,
// then the process is reaped.
func (detector *PythonDetector) Close() error {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.closed {
		return nil
	}
	detector.closed = true

	_ = detector.stdin.Close()
	if err := detector.cmd.Wait(); err != nil {
		return fmt.Errorf("detector exit: %w", err)
	}
	return nil
}

func encodeRequest(jpegFrame []byte) ([]byte, error) {
	if len(jpegFrame) == 0 {
		return nil, fmt.Errorf("empty frame")
	}
	line, err := json.Marshal(request{JPEG: base64.StdEncoding.EncodeToString(jpegFrame)})
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return append(line, '\n'), nil
}

func decodeResponse(line []byte) (signal.Observation, error) {
	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		return signal.Observation{}, fmt.Errorf("decode detector result: %w", err)
	}
	if resp.Error != "" {
		return signal.Observation{}, fmt.Errorf("detector: %s", resp.Error)
	}
	if resp.Observation == nil {
		return signal.Observation{}, fmt.Errorf("detector result missing observation")
	}
	return *resp.Observation, nil
}

// forwardStderr bridges the sidecar's stderr into the structured log so
// Python tracebacks land next to our own messages.
func forwardStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		log.Warn("detector stderr", "line", scanner.Text())
	}
}
