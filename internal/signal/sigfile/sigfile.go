// Package sigfile reads signal graphs from YAML.
//
//	root: out
//	primitives:
//	  - {name: sin, arity: 1}
//	nodes:
//	  - {id: x, op: input, index: 0}
//	  - {id: s, op: apply, prim: sin, args: [x]}
//	  - {id: out, op: output, index: 0, args: [s]}
//
// Nodes may refer to nodes declared later. Node identities are assigned in
// dependency order, children first, so the resulting graph is acyclic by
// construction.
package sigfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"wagner/internal/signal"
)

// File is the YAML document.
type File struct {
	Root       string          `yaml:"root"`
	Primitives []PrimitiveDecl `yaml:"primitives"`
	Nodes      []NodeDecl      `yaml:"nodes"`
}

// PrimitiveDecl declares an extended primitive usable with op "apply" or as
// an annotation through "prim".
type PrimitiveDecl struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
}

// NodeDecl is one node entry.
type NodeDecl struct {
	ID    string    `yaml:"id"`
	Op    string    `yaml:"op"`
	Value yaml.Node `yaml:"value"`
	Index *int64    `yaml:"index"`
	Label string    `yaml:"label"`
	Name  string    `yaml:"name"`
	BinOp string    `yaml:"binop"`
	Args  []string  `yaml:"args"`
	Prim  string    `yaml:"prim"`
}

// Error is a load error tied to one node entry.
type Error struct {
	Key  string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("node %q (line %d): %v", e.Key, e.Line, e.Err)
	}
	return fmt.Sprintf("node %q: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrCycle reports a node that depends on itself through its arguments.
var ErrCycle = errors.New("cyclic reference")

// Loaded is a built graph with the file's node keys.
type Loaded struct {
	Graph *signal.Graph
	Root  signal.NodeID
	keys  map[signal.NodeID]string
	ids   map[string]signal.NodeID
}

// Key returns the file key of id, or "" for nodes the file did not name.
func (l *Loaded) Key(id signal.NodeID) string { return l.keys[id] }

// ID returns the node built for key.
func (l *Loaded) ID(key string) (signal.NodeID, bool) {
	id, ok := l.ids[key]
	return id, ok
}

// LoadFile reads and builds the graph at path.
func LoadFile(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes data strictly (unknown keys are errors) and builds the graph.
func Parse(data []byte) (*Loaded, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty graph file")
		}
		return nil, err
	}
	return Build(&f, nodeLines(data))
}

// nodeLines maps node entry positions to their source lines.
func nodeLines(data []byte) []int {
	var raw struct {
		Nodes []yaml.Node `yaml:"nodes"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}
	lines := make([]int, len(raw.Nodes))
	for i := range raw.Nodes {
		lines[i] = raw.Nodes[i].Line
	}
	return lines
}

// Build constructs the graph described by f. lines may be nil.
func Build(f *File, lines []int) (*Loaded, error) {
	b := builder{
		f:     f,
		lines: lines,
		g:     signal.NewGraph(),
		prims: make(map[string]*signal.Primitive, len(f.Primitives)),
		decls: make(map[string]int, len(f.Nodes)),
		state: make(map[string]uint8, len(f.Nodes)),
		out: &Loaded{
			keys: make(map[signal.NodeID]string, len(f.Nodes)),
			ids:  make(map[string]signal.NodeID, len(f.Nodes)),
		},
	}
	for _, p := range f.Primitives {
		name := norm.NFC.String(p.Name)
		if name == "" {
			return nil, errors.New("primitive without a name")
		}
		if p.Arity < 0 {
			return nil, fmt.Errorf("primitive %q: negative arity %d", name, p.Arity)
		}
		if _, dup := b.prims[name]; dup {
			return nil, fmt.Errorf("primitive %q declared twice", name)
		}
		b.prims[name] = &signal.Primitive{Name: name, Arity: p.Arity}
	}
	for i, d := range f.Nodes {
		if d.ID == "" {
			return nil, &Error{Key: fmt.Sprintf("#%d", i), Line: b.line(i), Err: errors.New("missing id")}
		}
		if _, dup := b.decls[d.ID]; dup {
			return nil, &Error{Key: d.ID, Line: b.line(i), Err: errors.New("duplicate id")}
		}
		b.decls[d.ID] = i
	}
	if f.Root == "" {
		return nil, errors.New("missing root")
	}
	if _, ok := b.decls[f.Root]; !ok {
		return nil, fmt.Errorf("root %q is not declared", f.Root)
	}
	// declaration order first, so unreachable nodes are still validated
	for _, d := range f.Nodes {
		if _, err := b.build(d.ID); err != nil {
			return nil, err
		}
	}
	b.out.Graph = b.g
	b.out.Root = b.out.ids[f.Root]
	return b.out, nil
}

const (
	building uint8 = 1
	built    uint8 = 2
)

type builder struct {
	f     *File
	lines []int
	g     *signal.Graph
	prims map[string]*signal.Primitive
	decls map[string]int
	state map[string]uint8
	out   *Loaded
}

func (b *builder) line(i int) int {
	if i < len(b.lines) {
		return b.lines[i]
	}
	return 0
}

func (b *builder) build(key string) (signal.NodeID, error) {
	i, ok := b.decls[key]
	if !ok {
		return signal.NoNodeID, fmt.Errorf("unknown node %q", key)
	}
	switch b.state[key] {
	case built:
		return b.out.ids[key], nil
	case building:
		return signal.NoNodeID, &Error{Key: key, Line: b.line(i), Err: ErrCycle}
	}
	b.state[key] = building
	d := &b.f.Nodes[i]

	kids := make([]signal.NodeID, len(d.Args))
	for j, arg := range d.Args {
		id, err := b.build(arg)
		if err != nil {
			var le *Error
			if errors.As(err, &le) {
				return signal.NoNodeID, err
			}
			return signal.NoNodeID, &Error{Key: key, Line: b.line(i), Err: fmt.Errorf("argument %d: %w", j, err)}
		}
		kids[j] = id
	}

	spec, err := b.spec(d, kids)
	if err != nil {
		return signal.NoNodeID, &Error{Key: key, Line: b.line(i), Err: err}
	}
	id, err := b.g.Add(spec)
	if err != nil {
		return signal.NoNodeID, &Error{Key: key, Line: b.line(i), Err: err}
	}
	b.state[key] = built
	b.out.ids[key] = id
	b.out.keys[id] = key
	return id, nil
}

func (b *builder) spec(d *NodeDecl, kids []signal.NodeID) (signal.Spec, error) {
	op, ok := signal.ParseOp(d.Op)
	if !ok {
		return signal.Spec{}, fmt.Errorf("unknown op %q", d.Op)
	}
	s := signal.Spec{Op: op, Kids: kids}

	if d.Label != "" && d.Name != "" {
		return s, errors.New("label and name are exclusive")
	}
	s.Text = norm.NFC.String(d.Label + d.Name)

	if d.Index != nil {
		idx, err := safecast.Conv[uint32](*d.Index)
		if err != nil {
			return s, fmt.Errorf("index %d out of range: %w", *d.Index, err)
		}
		s.Index = int(idx)
	} else if needsIndex(op) {
		return s, fmt.Errorf("%s requires an index", op)
	}

	if err := decodeValue(&s, &d.Value); err != nil {
		return s, err
	}

	if op == signal.OpBinOp {
		bop, err := signal.ParseBinOp(d.BinOp)
		if err != nil {
			return s, err
		}
		s.BinOp = bop
	} else if d.BinOp != "" {
		return s, fmt.Errorf("%s takes no binop", op)
	}

	if d.Prim != "" {
		p, ok := b.prims[norm.NFC.String(d.Prim)]
		if !ok {
			return s, fmt.Errorf("undeclared primitive %q", d.Prim)
		}
		s.Prim = p
	}
	return s, nil
}

func needsIndex(op signal.Op) bool {
	switch op {
	case signal.OpProj, signal.OpRef, signal.OpInput, signal.OpOutput:
		return true
	}
	return false
}

// decodeValue reads the raw value node; Kind 0 means the key was absent.
func decodeValue(s *signal.Spec, v *yaml.Node) error {
	present := v.Kind != 0
	switch s.Op {
	case signal.OpInt:
		if !present {
			return errors.New("int requires a value")
		}
		if err := v.Decode(&s.Int); err != nil {
			return fmt.Errorf("int value: %w", err)
		}
	case signal.OpReal:
		if !present {
			return errors.New("real requires a value")
		}
		if err := v.Decode(&s.Real); err != nil {
			return fmt.Errorf("real value: %w", err)
		}
	default:
		if present {
			return fmt.Errorf("%s takes no value", s.Op)
		}
	}
	return nil
}
