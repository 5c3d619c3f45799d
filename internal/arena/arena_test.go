package arena

import "testing"

func TestArenaHandlesAreOneBased(t *testing.T) {
	a := New[string](0)
	if got := a.Get(0); got != nil {
		t.Fatalf("Get(0) = %v, want nil", *got)
	}
	first := a.Allocate("a")
	second := a.Allocate("b")
	if first != 1 || second != 2 {
		t.Fatalf("handles = %d,%d, want 1,2", first, second)
	}
	if got := *a.Get(second); got != "b" {
		t.Fatalf("Get(2) = %q, want %q", got, "b")
	}
	if a.Get(3) != nil {
		t.Fatalf("Get(3) should be nil for out of range handle")
	}
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}
}

func TestArenaGetIsStableAcrossMutation(t *testing.T) {
	a := New[int](1)
	id := a.Allocate(10)
	*a.Get(id) = 42
	for i := 0; i < 100; i++ {
		a.Allocate(i)
	}
	if got := *a.Get(id); got != 42 {
		t.Fatalf("Get(%d) = %d, want 42", id, got)
	}
}
