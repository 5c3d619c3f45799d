// Package scope holds the memoization state of one translation: the stack of
// per-scope tables and the global occurrence counter.
package scope

import (
	"wagner/internal/signal"
	"wagner/internal/wir"
)

// Stack is an ordered sequence of tables. The most recently pushed table is
// the innermost scope and is searched first.
type Stack struct {
	tables []*wir.Table // outermost first; the innermost is the last element
}

// Push opens a new scope backed by t.
func (s *Stack) Push(t *wir.Table) {
	s.tables = append(s.tables, t)
}

// Pop closes the innermost scope and returns its table. Popping an empty
// stack returns nil.
func (s *Stack) Pop() *wir.Table {
	if len(s.tables) == 0 {
		return nil
	}
	last := len(s.tables) - 1
	t := s.tables[last]
	s.tables[last] = nil
	s.tables = s.tables[:last]
	return t
}

// Innermost returns the table of the current scope, or nil if no scope is
// open.
func (s *Stack) Innermost() *wir.Table {
	if len(s.tables) == 0 {
		return nil
	}
	return s.tables[len(s.tables)-1]
}

// Depth returns the number of open scopes.
func (s *Stack) Depth() int { return len(s.tables) }

// Lookup searches the open scopes from innermost to outermost. depth is 0
// for a hit in the innermost table.
func (s *Stack) Lookup(sig signal.NodeID) (id wir.NodeID, depth int, ok bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if id, ok := s.tables[i].Lookup(sig); ok {
			return id, len(s.tables) - 1 - i, true
		}
	}
	return wir.NoNodeID, 0, false
}

// Each calls fn for every open table from innermost to outermost until fn
// returns false.
func (s *Stack) Each(fn func(depth int, t *wir.Table) bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if !fn(len(s.tables)-1-i, s.tables[i]) {
			return
		}
	}
}
