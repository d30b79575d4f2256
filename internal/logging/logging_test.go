package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestShouldLog(t *testing.T) {
	tests := []struct {
		configLevel  LogLevel
		messageLevel LogLevel
		want         bool
	}{
		{InfoLevel, DebugLevel, false},
		{InfoLevel, InfoLevel, true},
		{InfoLevel, WarnLevel, true},
		{InfoLevel, ErrorLevel, true},
		{ErrorLevel, WarnLevel, false},
		{DebugLevel, DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.configLevel)+"/"+string(tt.messageLevel), func(t *testing.T) {
			l := NewLogger(Config{Level: tt.configLevel})
			if got := l.shouldLog(tt.messageLevel); got != tt.want {
				t.Errorf("shouldLog(%s) with config %s = %v, want %v",
					tt.messageLevel, tt.configLevel, got, tt.want)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	l.Info("pipeline started", Fields{"sessionId": "20240115_1030_ab12"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "pipeline started" {
		t.Errorf("message = %v, want 'pipeline started'", entry["message"])
	}
	fields, ok := entry["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("fields missing from JSON entry")
	}
	if fields["sessionId"] != "20240115_1030_ab12" {
		t.Errorf("sessionId = %v", fields["sessionId"])
	}
}

func TestHumanOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	l.Warn("generator unavailable", Fields{"model": "none", "count": 3})

	out := buf.String()
	if !strings.Contains(out, "[warn]") {
		t.Errorf("output %q missing level tag", out)
	}
	if !strings.Contains(out, "generator unavailable") {
		t.Errorf("output %q missing message", out)
	}
	// Keys are sorted, so count comes before model
	if !strings.Contains(out, "count=3, model=none") {
		t.Errorf("output %q missing sorted fields", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Format: HumanFormat, Level: WarnLevel, Output: &buf})

	l.Debug("not logged", nil)
	l.Info("not logged either", nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	l.Error("logged", nil)
	if buf.Len() == 0 {
		t.Error("expected error output")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != JSONFormat {
		t.Errorf("ParseFormat(json) = %v", got)
	}
	if got := ParseFormat("human"); got != HumanFormat {
		t.Errorf("ParseFormat(human) = %v", got)
	}
	if got := ParseFormat(""); got != HumanFormat {
		t.Errorf("ParseFormat('') = %v", got)
	}
}
