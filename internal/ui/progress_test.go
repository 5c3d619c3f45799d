package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wagner/internal/pipeline"
)

func TestProgressModelTracksStages(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("translate", []string{"a.yaml", "b.yaml"}, events)

	steps := []pipeline.Event{
		{File: "a.yaml", Stage: pipeline.StageTranslate, Status: pipeline.StatusWorking},
		{File: "b.yaml", Status: pipeline.StatusCached},
		{File: "missing.yaml", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking},
	}
	for _, ev := range steps {
		model, _ = model.Update(eventMsg(ev))
	}
	view := model.View()
	for _, want := range []string{"translating", "cached", "a.yaml", "b.yaml"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "missing.yaml") {
		t.Fatalf("unknown files must be ignored:\n%s", view)
	}

	pm := model.(*progressModel)
	if !pm.items[1].final || pm.items[0].final {
		t.Fatalf("final flags = %v %v", pm.items[0].final, pm.items[1].final)
	}

	model, cmd := model.Update(doneMsg{})
	if cmd == nil {
		t.Fatalf("done must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
	if !strings.Contains(model.View(), "done: translate") {
		t.Fatalf("header not finished:\n%s", model.View())
	}
}

func TestLabels(t *testing.T) {
	if got := statusLabel(pipeline.StageInline, pipeline.StatusWorking); got != "inlining" {
		t.Fatalf("label = %q", got)
	}
	if got := statusLabel(pipeline.StageRender, pipeline.StatusError); got != "error" {
		t.Fatalf("label = %q", got)
	}
	if got := truncate("abcdefgh", 5); got != "ab..." {
		t.Fatalf("truncate = %q", got)
	}
}

func TestProgressHeaderCounts(t *testing.T) {
	events := make(chan pipeline.Event)
	model := NewProgressModel("translate", []string{"a.yaml", "b.yaml", "c.yaml"}, events)
	model, _ = model.Update(eventMsg{File: "a.yaml", Status: pipeline.StatusCached})
	model, _ = model.Update(eventMsg{File: "b.yaml", Stage: pipeline.StageLoad, Status: pipeline.StatusError, Elapsed: 3 * time.Millisecond})
	view := model.View()
	if !strings.Contains(view, "translate 2/3 (1 cached, 1 failed)") {
		t.Fatalf("header counts missing:\n%s", view)
	}
	if !strings.Contains(view, "3.0ms") {
		t.Fatalf("elapsed missing:\n%s", view)
	}
}
