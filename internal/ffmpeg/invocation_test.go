package ffmpeg

import (
	"slices"
	"strings"
	"testing"
)

func TestArgsOrdering(t *testing.T) {
	inv := Invocation{
		Binary: "/usr/bin/ffmpeg",
		Input:  "in.mp4",
		Output: "out.mp4",
		Options: []Arg{
			{Flag: "-c:v", Value: "libx264"},
			{Flag: "-c:a", Value: "aac"},
			{Flag: "-crf", Value: "27"},
			{Flag: "-an"},
		},
		VideoFilters: `scale=trunc(oh*a/2)*2:min(720\,ih),fps=25`,
		AudioFilters: "atempo=2",
		Format:       "mp4",
		LogLevel:     "verbose",
	}
	want := []string{
		"-hide_banner", "-nostats", "-loglevel", "verbose", "-progress", "pipe:1", "-y",
		"-i", "in.mp4",
		"-c:v", "libx264", "-c:a", "aac", "-crf", "27", "-an",
		"-vf", `scale=trunc(oh*a/2)*2:min(720\,ih),fps=25`,
		"-af", "atempo=2",
		"-f", "mp4",
		"out.mp4",
	}
	if got := inv.Args(); !slices.Equal(got, want) {
		t.Fatalf("Args mismatch\n got: %q\nwant: %q", got, want)
	}
	if v, ok := inv.Value("-crf"); !ok || v != "27" {
		t.Fatalf("unexpected crf lookup: %q %v", v, ok)
	}
	if _, ok := inv.Value("-b:v"); ok {
		t.Fatal("unexpected -b:v")
	}
}

func TestArgsDefaults(t *testing.T) {
	inv := Invocation{Input: "a.mp3", Output: "b.mp3"}
	args := inv.Args()
	if args[3] != "warning" {
		t.Fatalf("expected warning loglevel, got %q", args[3])
	}
	if args[len(args)-1] != "b.mp3" {
		t.Fatalf("expected output last, got %q", args[len(args)-1])
	}
	if slices.Contains(args, "-vf") || slices.Contains(args, "-f") {
		t.Fatalf("unexpected optional args: %q", args)
	}
	if inv.BinaryName() != "ffmpeg" {
		t.Fatalf("unexpected binary default %q", inv.BinaryName())
	}
}

func TestShellStringQuotesUnsafeArguments(t *testing.T) {
	inv := Invocation{
		Input:        "/media/my clip.mp4",
		Output:       "/media/my clip_crf27.mp4",
		VideoFilters: `scale=trunc(oh*a/2)*2:min(720\,ih)`,
	}
	got := inv.ShellString()
	if !strings.HasPrefix(got, "ffmpeg -hide_banner") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	for _, fragment := range []string{"'/media/my clip.mp4'", `'scale=trunc(oh*a/2)*2:min(720\,ih)'`, "pipe:1"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %q", fragment, got)
		}
	}
}
