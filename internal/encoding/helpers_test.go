package encoding

import (
	"testing"

	"squeeze/internal/media"
)

func videoInput() media.Descriptor {
	return media.Descriptor{
		Path:     "/videos/test_1.mp4",
		Formats:  []string{"mov", "mp4", "m4a", "3gp", "3g2", "mj2"},
		Duration: 10,
		HasAudio: true,
		HasVideo: true,
		Audio:    media.AudioStream{Codec: "aac", BitRate: 192000},
		Video: media.VideoStream{
			Codec:     "h264",
			BitRate:   4000000,
			Width:     1920,
			Height:    1080,
			FrameRate: media.Whole(30),
			Frames:    300,
		},
	}
}

func audioInput() media.Descriptor {
	return media.Descriptor{
		Path:     "/music/test_1.mp3",
		Formats:  []string{"mp3"},
		Duration: 30,
		HasAudio: true,
		Audio:    media.AudioStream{Codec: "mp3", BitRate: 320000},
	}
}

func defaultProfile(t *testing.T, opts ProfileOptions) Profile {
	t.Helper()
	p, err := ProfileFromConfig(nil, opts)
	if err != nil {
		t.Fatalf("ProfileFromConfig: %v", err)
	}
	return p
}

func buildTask(t *testing.T, in media.Descriptor, p Profile, configure func(*Task) error) *Task {
	t.Helper()
	task := NewTask(in, p, Settings{FFmpeg: "ffmpeg", LogLevel: "warning"})
	if err := configure(task); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := task.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return task
}

func optionValue(t *testing.T, task *Task, flag string) string {
	t.Helper()
	v, ok := task.Invocation().Value(flag)
	if !ok {
		t.Fatalf("expected option %s in %v", flag, task.Invocation().Options)
	}
	return v
}

func hasOption(task *Task, flag string) bool {
	_, ok := task.Invocation().Value(flag)
	return ok
}
