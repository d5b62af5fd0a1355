package borsh

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerReportsCompilation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	if _, err := NewAccountsWithDefaults(widgetsDoc(t)); err != nil {
		t.Fatalf("NewAccounts failed: %v", err)
	}

	compiled := logs.FilterMessage("compiled accounts").All()
	if len(compiled) != 1 {
		t.Fatalf("got %d compiled entries, want 1", len(compiled))
	}
	if got := compiled[0].ContextMap()["count"]; got != int64(2) {
		t.Errorf("count = %v, want 2", got)
	}

	// Widget holds a string and a vec
	if n := logs.FilterField(zap.String("account", "Widget")).Len(); n != 1 {
		t.Errorf("got %d span entries for Widget, want 1", n)
	}
}

func TestLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger returned nil")
	}
}
