package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)
	log.Error("ImageLoader", errors.New("boom"), map[string]interface{}{"path": "a.png"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["component"] != "ImageLoader" {
		t.Fatalf("component = %v", entry["component"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("error = %v", entry["error"])
	}
	if entry["path"] != "a.png" {
		t.Fatalf("path = %v", entry["path"])
	}
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)
	log.Debug("Cache", "miss", nil)
	log.Info("Cache", "stored", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	log.Warning("Cache", "slow", nil)
	if buf.Len() == 0 {
		t.Fatal("expected warning to be written")
	}
}

func TestZerologAdapterTypesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)
	log.Info("GalleryController", "open", map[string]interface{}{
		"count":      3,
		"generation": uint64(2),
		"formats":    []string{"png", "jpg"},
		"failed":     errors.New("corrupt"),
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["count"] != float64(3) || entry["generation"] != float64(2) {
		t.Fatalf("numbers = %v %v", entry["count"], entry["generation"])
	}
	if formats, ok := entry["formats"].([]interface{}); !ok || len(formats) != 2 {
		t.Fatalf("formats = %v", entry["formats"])
	}
	if entry["failed"] != "corrupt" || entry["message"] != "open" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNopDiscards(t *testing.T) {
	log := NewNop()
	log.Error("Cache", errors.New("ignored"), nil)
	log.Debug("Cache", "ignored", map[string]interface{}{"k": "v"})
}
