package pipeline

import "testing"

func TestRecorderFinal(t *testing.T) {
	var r Recorder
	r.OnEvent(Event{File: "a.yaml", Stage: StageLoad, Status: StatusWorking})
	r.OnEvent(Event{File: "b.yaml", Status: StatusCached})
	r.OnEvent(Event{File: "a.yaml", Stage: StageRender, Status: StatusDone})

	if st, ok := r.Final("a.yaml"); !ok || st != StatusDone {
		t.Fatalf("a.yaml final = %q %v", st, ok)
	}
	if st, ok := r.Final("b.yaml"); !ok || st != StatusCached {
		t.Fatalf("b.yaml final = %q %v", st, ok)
	}
	if _, ok := r.Final("c.yaml"); ok {
		t.Fatalf("c.yaml has no events")
	}
	if len(r.Events()) != 3 {
		t.Fatalf("events = %d", len(r.Events()))
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "x", Status: StatusQueued})
	if ev := <-ch; ev.File != "x" || ev.Status.Terminal() {
		t.Fatalf("event = %+v", ev)
	}
	ChannelSink{}.OnEvent(Event{})
}
