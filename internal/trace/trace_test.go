package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatalf("phase level must stop at pass scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Fatalf("detail level must stop at file scope")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Fatalf("debug level emits node scope")
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStreamSpanNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	span := Begin(tr, ScopeFile, "file:osc.yaml", 0)
	span.WithExtra("nodes", "12").End("ok")
	Point(tr, ScopeNode, "rec", "hidden", span.ID())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin+end only, got %d lines:\n%s", len(lines), buf.String())
	}
	var end map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if end["kind"] != "end" || end["detail"] != "ok" || end["scope"] != "file" {
		t.Fatalf("unexpected end event: %v", end)
	}
}

func TestRingWrapsInOrder(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	got := snap[0].Name + snap[1].Name + snap[2].Name
	if got != "cde" {
		t.Fatalf("got %q", got)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[node]") {
		t.Fatalf("text dump lacks scope: %q", buf.String())
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("expected nop tracer")
	}
	r := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), NewMultiTracer(LevelPhase, r))
	Begin(FromContext(ctx), ScopePass, "translate", 0).End("")
	if len(r.Snapshot()) != 2 {
		t.Fatalf("expected begin/end through multi tracer")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off config: %v %v", tr, err)
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Fatalf("expected mode error")
	}
}

func TestRingDropped(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for i := 0; i < 5; i++ {
		Point(r, ScopeNode, "p", "", 0)
	}
	if got := r.Dropped(); got != 3 {
		t.Fatalf("Dropped = %d, want 3", got)
	}
	snap := r.Snapshot()
	if snap[0].Seq >= snap[1].Seq {
		t.Fatalf("snapshot out of order: %d then %d", snap[0].Seq, snap[1].Seq)
	}
}

func TestSpanEndCarriesElapsed(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	span := Begin(tr, ScopePass, "translate", 0)
	time.Sleep(time.Millisecond)
	if d := span.End(""); d <= 0 {
		t.Fatalf("End returned %v", d)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "ms") {
		t.Fatalf("unexpected text trace:\n%s", buf.String())
	}

	inert := Begin(tr, ScopeNode, "rec", span.ID())
	if inert.ID() != 0 || inert.WithExtra("k", "v").End("") != 0 {
		t.Fatalf("span below level must be inert")
	}
}

func TestHeartbeatBeats(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	hb := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Fatalf("no heartbeat recorded: %+v", snap)
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("disabled tracer must not beat")
	}
}

func TestNewBothExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("both mode should fan out, got %T", tr)
	}
	Begin(tr, ScopeDriver, "batch", 0).End("")
	ring, ok := multi.Ring()
	if !ok || len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("events must reach stream and ring")
	}
	if lvl, err := ParseLevel("DeTail"); err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel = %v %v", lvl, err)
	}
}
