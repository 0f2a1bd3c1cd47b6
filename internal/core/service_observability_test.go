package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"legislativelens/pkg/domain"
)

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

type captureLogger struct{ calls []string }

func (c *captureLogger) Debug(msg string, _ ...any) { c.calls = append(c.calls, "d:"+msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.calls = append(c.calls, "i:"+msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.calls = append(c.calls, "w:"+msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.calls = append(c.calls, "e:"+msg) }

type metricsCall struct {
	op  string
	hit bool
}

type captureMetricsRecorder struct{ calls []metricsCall }

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, hit bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, hit: hit})
}

func (c *captureMetricsRecorder) has(op string, hit bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.hit == hit {
			return true
		}
	}
	return false
}

type captureTracer struct{ ended []string }

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	return ctx, captureSpan{tracer: c, op: op}
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s captureSpan) End(error) { s.tracer.ended = append(s.tracer.ended, s.op) }

func TestServiceOptionsOverrideClockAndLogger(t *testing.T) {
	fixed := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	log := &captureLogger{}
	svc := newFixtureService(t, WithClock(stubClock{t: fixed}), WithLogger(log))
	if !svc.Stats().LoadedAt.Equal(fixed) {
		t.Fatalf("expected clock override, got %v", svc.Stats().LoadedAt)
	}
	if !svc.Snapshot().Meta.CreatedAt.Equal(fixed) {
		t.Fatalf("expected snapshot timestamp from clock")
	}
	if len(log.calls) == 0 || log.calls[len(log.calls)-1] != "i:catalog loaded" {
		t.Fatalf("expected load log, got %v", log.calls)
	}
}

func TestServiceNilOptionsKeepDefaults(t *testing.T) {
	svc := NewService(loadRepositoryFixtures(t), WithLogger(nil), WithMetricsRecorder(nil), WithTracer(nil), WithClock(nil))
	if svc.logger == nil || svc.metrics == nil || svc.tracer == nil || svc.clock == nil {
		t.Fatalf("nil options must not clear defaults")
	}
	if len(svc.Bills()) == 0 {
		t.Fatalf("expected bills")
	}
}

func TestServiceRecordsQueryMetricsAndSpans(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	tracer := &captureTracer{}
	svc := newFixtureService(t, WithMetricsRecorder(metrics), WithTracer(tracer))

	svc.BillByID("HR1")
	svc.BillByID("HR0")
	svc.MembersByState("CA")
	svc.CommitteesForMember("NOBODY")

	for _, want := range []metricsCall{
		{"bill_by_id", true},
		{"bill_by_id", false},
		{"members_by_state", true},
		{"committees_for_member", false},
	} {
		if !metrics.has(want.op, want.hit) {
			t.Fatalf("missing metrics call %+v in %+v", want, metrics.calls)
		}
	}
	if got := strings.Join(tracer.ended, ","); got != "bill_by_id,bill_by_id,members_by_state,committees_for_member" {
		t.Fatalf("unexpected spans %s", got)
	}
}

func TestExpvarMetricsRecorderPublishesSnapshot(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	svc := newFixtureService(t, WithMetricsRecorder(rec))
	svc.Members()
	svc.MemberByID("missing")

	snap := rec.Snapshot()
	if snap.Results["members"]["hit"] != 1 || snap.Results["member_by_id"]["miss"] != 1 {
		t.Fatalf("unexpected results %+v", snap.Results)
	}
	v := expvar.Get(rec.Name())
	if v == nil {
		t.Fatalf("expected expvar %s to be published", rec.Name())
	}
	var decoded ExpvarMetricsSnapshot
	if err := json.Unmarshal([]byte(v.String()), &decoded); err != nil {
		t.Fatalf("decode expvar: %v", err)
	}
	if decoded.Results["members"]["hit"] != 1 {
		t.Fatalf("expvar view out of sync: %+v", decoded.Results)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	again, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("re-register should reuse collectors: %v", err)
	}
	svc := newFixtureService(t, WithMetricsRecorder(rec))
	svc.BillsBySponsor("S001184")
	again.Observe(context.Background(), "bills_by_sponsor", false, time.Millisecond)

	if got := promtestutil.ToFloat64(rec.results.WithLabelValues("bills_by_sponsor", "hit")); got != 1 {
		t.Fatalf("expected one hit, got %v", got)
	}
	if got := promtestutil.ToFloat64(rec.results.WithLabelValues("bills_by_sponsor", "miss")); got != 1 {
		t.Fatalf("expected shared collector miss, got %v", got)
	}
	if n := promtestutil.CollectAndCount(rec.durations, "lens_query_duration_seconds"); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}

func TestJSONTracerRecordsSnapshotSave(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	svc := newFixtureService(t, WithTracer(tracer))
	if _, err := SaveSnapshot(context.Background(), svc, failingStore{}); err == nil {
		t.Fatalf("expected save error")
	}
	var entry JSONTraceEntry
	for _, e := range tracer.Entries() {
		if e.Operation == "save_snapshot" {
			entry = e
		}
	}
	if entry.Status != "error" || entry.Error != "disk full" {
		t.Fatalf("unexpected span %+v", entry)
	}
	if !strings.Contains(buf.String(), `"operation":"save_snapshot"`) {
		t.Fatalf("expected JSON line output, got %s", buf.String())
	}
}

type failingStore struct{}

func (failingStore) Save(context.Context, domain.Snapshot) error { return errors.New("disk full") }

func (failingStore) Load(context.Context) (domain.Snapshot, bool, error) {
	return domain.Snapshot{}, false, errors.New("disk full")
}

func (failingStore) Close() error { return nil }
