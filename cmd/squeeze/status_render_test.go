package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLinePlain(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusOK, "ffmpeg version 7", false)
	if !strings.HasPrefix(got, "  FFmpeg:") || !strings.HasSuffix(got, "[OK] ffmpeg version 7") {
		t.Fatalf("unexpected line %q", got)
	}
	if got := renderStatusLine("x", statusError, "", false); !strings.HasSuffix(got, "[ERROR]") {
		t.Fatalf("unexpected bare line %q", got)
	}
}

func TestRenderStatusLineColor(t *testing.T) {
	got := renderStatusLine("x", statusWarn, "", true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI escape in %q", got)
	}
}

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer
	if !shouldColorize(&buf, "always") {
		t.Fatal("always should colorize")
	}
	if shouldColorize(&buf, "never") {
		t.Fatal("never should not colorize")
	}
	if shouldColorize(&buf, "auto") {
		t.Fatal("non-terminal writer should not colorize")
	}
}

func TestRenderTablePadsRows(t *testing.T) {
	out := renderTable("streams", propertyColumns, [][]string{{"codec"}, {"width", "1,920", "extra"}})
	for _, want := range []string{"streams", "codec", "1,920"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "extra") {
		t.Fatalf("extra cells should be dropped: %q", out)
	}
	if renderTable("", nil, nil) != "" {
		t.Fatal("expected empty table without headers")
	}
}
