package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/stowage/layout"
)

func TestDumpDemo(t *testing.T) {
	tests := []struct {
		name     string
		opts     dumpOptions
		contains []string
		excludes []string
	}{
		{
			name:     "visible only",
			opts:     dumpOptions{Scene: "demo", Frames: 0},
			contains: []string{"scene demo", "shelf", "crate", "bolt_a", "lockbox", "wrench"},
			excludes: []string{"hidden_bolt"},
		},
		{
			name:     "all",
			opts:     dumpOptions{Scene: "demo", Frames: 5, All: true},
			contains: []string{"hidden_bolt", "hidden"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := dump(context.Background(), &out, tt.opts, log.New(io.Discard)); err != nil {
				t.Fatalf("dump: %v", err)
			}
			got := out.String()
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestDumpUnknownScene(t *testing.T) {
	err := dump(context.Background(), io.Discard, dumpOptions{Scene: "nope"}, log.New(io.Discard))
	if err == nil {
		t.Fatalf("expected error for a missing scene")
	}
}

func TestDumpCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := dump(ctx, io.Discard, dumpOptions{Scene: "demo", Frames: 10}, log.New(io.Discard))
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestScenesCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"scenes"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "demo") {
		t.Errorf("scenes output = %q", out.String())
	}
}

func TestFlipString(t *testing.T) {
	tests := []struct {
		flip layout.Flip
		want string
	}{
		{0, "-"},
		{layout.FlipHorizontal, "x"},
		{layout.FlipVertical, "y"},
		{layout.FlipHorizontal | layout.FlipVertical, "xy"},
	}
	for _, tt := range tests {
		if got := flipString(tt.flip); got != tt.want {
			t.Errorf("flipString(%v) = %q, want %q", tt.flip, got, tt.want)
		}
	}
}
