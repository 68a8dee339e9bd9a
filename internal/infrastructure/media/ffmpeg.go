package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Transcoder converts arbitrary input audio into the canonical
// mono/16kHz WAV encoding the model integration expects, using ffmpeg.
type Transcoder struct {
	tempDir string
}

// NewTranscoder creates a transcoder writing into tempDir
func NewTranscoder(tempDir string) *Transcoder {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Transcoder{tempDir: tempDir}
}

// Transcode converts src to mono 16kHz WAV in the temp dir. It returns
// the output path and a cleanup func that removes the temp file; callers
// must defer cleanup immediately so the file is released on every exit
// path, including model-call failure.
func (t *Transcoder) Transcode(ctx context.Context, src string) (string, func(), error) {
	if err := os.MkdirAll(t.tempDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}

	out := filepath.Join(t.tempDir, uuid.New().String()+".wav")

	// ffmpeg -y -i input -ac 1 -ar 16000 -f wav output
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", src,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(out)
		return "", nil, fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.String()))
	}

	cleanup := func() { os.Remove(out) }
	return out, cleanup, nil
}

// ProbeDuration returns the duration of an audio file in seconds via ffprobe
func (t *Transcoder) ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	outBytes, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(outBytes)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe output %q: %w", strings.TrimSpace(string(outBytes)), err)
	}
	return duration, nil
}

// lastLine keeps error output readable; ffmpeg prints its whole banner on stderr
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
