package detector

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeRequest(t *testing.T) {
	frame := []byte{0xff, 0xd8, 0xff, 0xe0}
	line, err := encodeRequest(frame)
	if err != nil {
		t.Fatalf("encodeRequest: %v", err)
	}
	if !strings.HasSuffix(string(line), "\n") {
		t.Error("request line not newline terminated")
	}

	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(req.JPEG)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if string(decoded) != string(frame) {
		t.Error("payload does not round trip")
	}
}

func TestEncodeRequestRejectsEmptyFrame(t *testing.T) {
	if _, err := encodeRequest(nil); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
	}{
		{"observation", `{"observation":{"hands":[],"pose":null,"faces":[],"frame_width":640,"frame_height":480}}`, false},
		{"sidecar error", `{"error":"no frame decoded"}`, true},
		{"empty object", `{}`, true},
		{"garbage", `not json`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obs, err := decodeResponse([]byte(tc.line))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeResponse: %v", err)
			}
			if obs.FrameWidth != 640 || obs.FrameHeight != 480 {
				t.Errorf("frame dims = %dx%d", obs.FrameWidth, obs.FrameHeight)
			}
		})
	}
}

// fakeSidecar writes a shell script speaking the sidecar protocol: ready
// line first, then one canned observation per input line.
func fakeSidecar(t *testing.T) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "sidecar.sh")
	body := `#!/bin/sh
echo '{"ready":true}'
while read line; do
  echo '{"observation":{"hands":[],"pose":null,"faces":[],"frame_width":320,"frame_height":240}}'
done
`
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write fake sidecar: %v", err)
	}
	return script
}

func TestPythonDetectorRoundTrip(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	det, err := StartPython(ctx, "sh", fakeSidecar(t))
	if err != nil {
		t.Fatalf("StartPython: %v", err)
	}

	for i := 0; i < 3; i++ {
		obs, err := det.Detect(ctx, []byte("fakejpeg"))
		if err != nil {
			t.Fatalf("Detect %d: %v", i, err)
		}
		if obs.FrameWidth != 320 {
			t.Errorf("Detect %d: frame width = %d", i, obs.FrameWidth)
		}
	}

	if err := det.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := det.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := det.Detect(ctx, []byte("fakejpeg")); err == nil {
		t.Error("Detect after Close did not fail")
	}
}

func TestStartPythonFailsOnErrorReadyLine(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	script := filepath.Join(t.TempDir(), "broken.sh")
	body := "#!/bin/sh\necho '{\"error\":\"model load failed\"}'\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	if _, err := StartPython(context.Background(), "sh", script); err == nil {
		t.Error("expected startup error")
	}
}
