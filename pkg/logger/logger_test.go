package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONWithComponent(t *testing.T) {
	t.Cleanup(Reset)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf, Component: "server"})
	log.Debug().Str("k", "v").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "server" || entry["k"] != "v" || entry["message"] != "hello" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestInit_OnlyFirstCallCounts(t *testing.T) {
	t.Cleanup(Reset)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	l := Get()
	l.Info().Msg("x")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output only on the first writer")
	}
}

func TestInit_File(t *testing.T) {
	t.Cleanup(Reset)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	path := filepath.Join(t.TempDir(), "tui.log")
	var stdout bytes.Buffer
	l := Init(Options{File: path, Output: &stdout, Pretty: true})
	l.Info().Msg("to file")

	if stdout.Len() != 0 {
		t.Fatalf("nothing should reach Output when File is set")
	}
	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"message":"to file"`) {
		t.Fatalf("unexpected file contents: %s", b)
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
