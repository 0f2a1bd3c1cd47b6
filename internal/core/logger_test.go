package core

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesStructuredFields(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(obsCore))

	svc := NewService(loadRepositoryFixtures(t), WithLogger(log))
	if len(svc.Bills()) == 0 {
		t.Fatalf("expected bills")
	}
	entries := logs.FilterMessage("catalog loaded").All()
	if len(entries) != 1 {
		t.Fatalf("expected one load entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["source"] != "fs:" || fields["bills"] != int64(5) {
		t.Fatalf("unexpected fields %v", fields)
	}
	log.Warn("warned", "k", "v")
	log.Error("failed", "k", "v")
	log.Debug("debugged")
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 || logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Fatalf("expected warn and error entries, got %d total", logs.Len())
	}
}

func TestNewZapLoggerNilIsNoop(t *testing.T) {
	log := NewZapLogger(nil)
	log.Info("ignored")
	_ = log.Sync()
}
