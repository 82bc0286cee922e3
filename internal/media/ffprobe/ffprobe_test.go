package ffprobe

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_name": "mjpeg", "codec_type": "video", "width": 600, "height": 600,
     "avg_frame_rate": "0/0", "disposition": {"attached_pic": 1}},
    {"index": 1, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080,
     "avg_frame_rate": "30000/1001", "bit_rate": "4500000", "nb_frames": "300",
     "disposition": {"default": 1, "attached_pic": 0}, "tags": {"language": "und"}},
    {"index": 2, "codec_name": "aac", "codec_type": "audio", "bit_rate": "192000",
     "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 3, "duration": "10.010000",
    "size": "5000000", "bit_rate": "4000000", "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
}`

func TestParseAndSelectStreams(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	video, ok := result.FirstVideo()
	if !ok || video.CodecName != "h264" {
		t.Fatalf("expected h264 motion video, got %+v", video)
	}
	if video.BitRateValue() != 4500000 || video.FrameCount() != 300 {
		t.Fatalf("unexpected video numbers: %d %d", video.BitRateValue(), video.FrameCount())
	}
	audio, ok := result.FirstAudio()
	if !ok || audio.BitRateValue() != 192000 {
		t.Fatalf("unexpected audio stream: %+v", audio)
	}
	if result.DurationSeconds() != 10.01 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	names := result.FormatNames()
	if len(names) != 6 || names[0] != "mov" || names[1] != "mp4" {
		t.Fatalf("unexpected format names: %v", names)
	}
}

func TestStreamPropertiesDropsNestedObjects(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	props, err := result.StreamProperties()
	if err != nil {
		t.Fatalf("StreamProperties returned error: %v", err)
	}
	if len(props) != 3 {
		t.Fatalf("expected 3 streams, got %d", len(props))
	}
	if _, ok := props[1]["disposition"]; ok {
		t.Fatal("expected disposition to be dropped")
	}
	if _, ok := props[1]["tags"]; ok {
		t.Fatal("expected tags to be dropped")
	}
	if props[1]["codec_name"] != "h264" {
		t.Fatalf("unexpected codec: %v", props[1]["codec_name"])
	}
}

func TestParseHandlesInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", BitRate: "N/A", NBFrames: "bad"}},
		Format:  Format{Duration: "bad"},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.Streams[0].BitRateValue() != 0 || result.Streams[0].FrameCount() != 0 {
		t.Fatal("expected invalid numbers to collapse to zero")
	}
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInspectClassifiesFailures(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ffprobe-ok")
	reject := filepath.Join(dir, "ffprobe-reject")
	writeScript(t, ok, "#!/bin/sh\ncat <<'JSON'\n"+sampleJSON+"\nJSON\n")
	writeScript(t, reject, "#!/bin/sh\necho 'Invalid data found when processing input' >&2\nexit 1\n")

	result, err := Inspect(context.Background(), ok, "clip.mp4")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if len(result.Streams) != 3 || len(result.raw) == 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	_, err = Inspect(context.Background(), reject, "notes.txt")
	if !errors.Is(err, ErrNotMedia) {
		t.Fatalf("expected ErrNotMedia, got %v", err)
	}

	_, err = Inspect(context.Background(), filepath.Join(dir, "missing"), "clip.mp4")
	if err == nil || errors.Is(err, ErrNotMedia) {
		t.Fatalf("expected start failure distinct from ErrNotMedia, got %v", err)
	}

	if _, err := Inspect(context.Background(), ok, "  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}
