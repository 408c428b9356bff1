package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevelValid(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ParseLevel(tc.input)
			if got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParseLevelInvalid(t *testing.T) {
	got := ParseLevel("invalid")
	if got != LevelInfo {
		t.Errorf("ParseLevel(\"invalid\") = %v, want %v (default)", got, LevelInfo)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.level.String(); got != tc.expected {
				t.Errorf("Level.String() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"invalid", FormatJSON}, // default
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ParseFormat(tc.input)
			if got != tc.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	l.Infof("candidate recorded", map[string]any{"publicId": "avatars/u1/pic"})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "info" {
		t.Errorf("level = %q, want info", entry.Level)
	}
	if entry.Message != "candidate recorded" {
		t.Errorf("message = %q, want %q", entry.Message, "candidate recorded")
	}
	if entry.Fields["publicId"] != "avatars/u1/pic" {
		t.Errorf("fields[publicId] = %v, want avatars/u1/pic", entry.Fields["publicId"])
	}
}

func TestLoggerTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	l.WithComponent("sweep").WithRunID("01J9ZZZZZZ").Info("phase complete")

	out := buf.String()
	if !strings.Contains(out, "[info]") {
		t.Errorf("text output missing level: %q", out)
	}
	if !strings.Contains(out, "component=sweep") {
		t.Errorf("text output missing component: %q", out)
	}
	if !strings.Contains(out, "runId=01J9ZZZZZZ") {
		t.Errorf("text output missing run ID: %q", out)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")
	l.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", len(lines), buf.String())
	}
}

func TestLoggerWithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
	child := parent.With(map[string]any{"schema": "programs"})

	parent.Info("parent entry")
	child.Info("child entry")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}

	var parentEntry, childEntry Entry
	if err := json.Unmarshal([]byte(lines[0]), &parentEntry); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &childEntry); err != nil {
		t.Fatal(err)
	}

	if _, ok := parentEntry.Fields["schema"]; ok {
		t.Error("parent logger picked up child field")
	}
	if childEntry.Fields["schema"] != "programs" {
		t.Errorf("child fields = %v, want schema=programs", childEntry.Fields)
	}
}
