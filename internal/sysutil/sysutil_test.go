package sysutil

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"", zerolog.InfoLevel},
		{"  Debug  ", zerolog.DebugLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		SetLogLevel(tt.in)
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Fatalf("SetLogLevel(%q) left level %v; want %v", tt.in, got, tt.want)
		}
	}
}
