package media

import (
	"context"
	"errors"
	"testing"

	"squeeze/internal/media/ffprobe"
	"squeeze/internal/services"
)

func TestParseRational(t *testing.T) {
	tests := []struct {
		in      string
		want    Rational
		fps     float64
		wantErr bool
	}{
		{"30000/1001", Rational{30000, 1001}, 30000.0 / 1001.0, false},
		{"25/1", Rational{25, 1}, 25, false},
		{"0/0", Rational{0, 0}, 0, false},
		{"24", Rational{24, 1}, 24, false},
		{"", Rational{}, 0, false},
		{"x/1", Rational{}, 0, true},
		{"1/y", Rational{}, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRational(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseRational(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRational(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseRational(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if got.Float() != tt.fps {
			t.Fatalf("ParseRational(%q).Float() = %v, want %v", tt.in, got.Float(), tt.fps)
		}
	}
	if Whole(25).String() != "25" || (Rational{24000, 1001}).String() != "24000/1001" {
		t.Fatal("unexpected rational rendering")
	}
}

func TestFromResultBuildsDescriptor(t *testing.T) {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "audio", CodecName: "aac", BitRate: "192000"},
			{CodecType: "video", CodecName: "h264", BitRate: "4000000", Width: 1920, Height: 1080, AvgFrameRate: "30/1", NBFrames: "300"},
		},
		Format: ffprobe.Format{Duration: "10.0", FormatName: "mov,mp4,m4a"},
	}
	desc, err := FromResult("/videos/clip.MP4", result)
	if err != nil {
		t.Fatalf("FromResult returned error: %v", err)
	}
	if !desc.HasAudio || !desc.HasVideo {
		t.Fatalf("expected both streams: %+v", desc)
	}
	if desc.FPS() != 30 || desc.Video.Height != 1080 || desc.Video.Frames != 300 {
		t.Fatalf("unexpected video: %+v", desc.Video)
	}
	if desc.Audio.BitRate != 192000 {
		t.Fatalf("unexpected audio: %+v", desc.Audio)
	}
	if desc.Suffix() != ".mp4" || desc.Stem() != "clip" {
		t.Fatalf("unexpected naming helpers: %q %q", desc.Suffix(), desc.Stem())
	}
	if !desc.HasFormat("mp4") || desc.HasFormat("mp3") {
		t.Fatalf("unexpected formats: %v", desc.Formats)
	}
}

func TestFromResultRejectsStreamlessFiles(t *testing.T) {
	for _, result := range []ffprobe.Result{
		{Streams: []ffprobe.Stream{{CodecType: "data"}}},
		{},
	} {
		_, err := FromResult("notes.txt", result)
		if !errors.Is(err, services.ErrProbe) || services.Skippable(err) {
			t.Fatalf("expected fatal probe failure, got %v", err)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := Descriptor{Path: "a.mp4", Formats: []string{"mov", "mp4"}}
	clone := original.Clone()
	clone.Formats[0] = "matroska"
	clone.Video.Height = 720
	if original.Formats[0] != "mov" || original.Video.Height != 0 {
		t.Fatalf("clone aliases original: %+v", original)
	}
}

func TestProbeClassifiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		marker error
	}{
		{"rejected", ffprobe.ErrNotMedia, services.ErrProbe},
		{"broken", errors.New("exec: not found"), services.ErrProbe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := SetInspectForTests(func(context.Context, string, string) (ffprobe.Result, error) {
				return ffprobe.Result{}, tt.err
			})
			defer restore()
			_, err := Probe(context.Background(), "ffprobe", "clip.mp4")
			if !errors.Is(err, tt.marker) || services.Skippable(err) {
				t.Fatalf("expected fatal %v, got %v", tt.marker, err)
			}
		})
	}
}

func TestDiffListsChangedProperties(t *testing.T) {
	in := Descriptor{
		Path:     "/v/a.mp4",
		HasVideo: true,
		HasAudio: true,
		Video:    VideoStream{Codec: "h264", Height: 1080, FrameRate: Whole(30)},
		Audio:    AudioStream{Codec: "aac", BitRate: 192000},
	}
	out := in.Clone()
	out.Path = "/v/a_crf27.mp4"
	out.Video.Height = 720
	out.Audio.BitRate = 128000

	got := in.Diff(out)
	want := []string{"path: /v/a.mp4 -> /v/a_crf27.mp4", "height: 1080 -> 720", "audio_bitrate: 192000 -> 128000"}
	if len(got) != len(want) {
		t.Fatalf("Diff = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Diff[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(in.Diff(in)) != 0 {
		t.Fatal("expected no changes against itself")
	}
}
