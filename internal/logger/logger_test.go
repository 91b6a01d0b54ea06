package logger

import (
	"errors"
	"strings"
	"testing"
)

func TestLogAddsToBuffer(t *testing.T) {
	EnsureInit()
	before := len(GetLogs())

	Log("loaded %d entries", 3)
	LogError("FETCH_PAGE", "extensions", errors.New("boom"))

	logs := GetLogs()
	if len(logs) < before+2 && len(logs) != maxBufferSize {
		t.Fatalf("expected 2 new entries, got %d -> %d", before, len(logs))
	}

	last := logs[len(logs)-1].Message
	if !strings.HasPrefix(last, "[ERROR] FETCH_PAGE") {
		t.Errorf("unexpected last message %q", last)
	}
	prev := logs[len(logs)-2].Message
	if prev != "[INFO] loaded 3 entries" {
		t.Errorf("unexpected message %q", prev)
	}
}

func TestBufferIsBounded(t *testing.T) {
	EnsureInit()
	for i := 0; i < maxBufferSize+50; i++ {
		LogFetch("https://example.com")
	}

	if got := len(GetLogs()); got != maxBufferSize {
		t.Errorf("expected buffer capped at %d, got %d", maxBufferSize, got)
	}
}

func TestGetLogsReturnsCopy(t *testing.T) {
	Log("original")
	logs := GetLogs()
	logs[len(logs)-1].Message = "mutated"

	again := GetLogs()
	if again[len(again)-1].Message == "mutated" {
		t.Error("GetLogs should return a copy of the buffer")
	}
}
