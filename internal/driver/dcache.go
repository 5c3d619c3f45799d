package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"wagner/internal/diag"
	"wagner/internal/signal"
	"wagner/internal/translate"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты трансляции по ключу Digest на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is everything needed to replay a translation without
// loading the graph again.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Output      string
	Diagnostics []DiskDiagnostic
	Stats       translate.Stats
	Reachable   int
	Shared      int
}

// DiskDiagnostic is the serialisable form of diag.Diagnostic.
type DiskDiagnostic struct {
	Severity uint8
	Code     uint16
	Node     uint32
	Message  string
	Notes    []DiskNote
}

// DiskNote is the serialisable form of diag.Note.
type DiskNote struct {
	Node uint32
	Msg  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	// Для удобства читаемости/очистки: подкаталог "ir".
	return filepath.Join(c.dir, "ir", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A payload
// written with another schema is reported as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func diagsToDisk(items []diag.Diagnostic) []DiskDiagnostic {
	out := make([]DiskDiagnostic, len(items))
	for i, d := range items {
		out[i] = DiskDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Node:     uint32(d.Node),
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			out[i].Notes = append(out[i].Notes, DiskNote{Node: uint32(n.Node), Msg: n.Msg})
		}
	}
	return out
}

func diagsFromDisk(items []DiskDiagnostic, bag *diag.Bag) {
	for _, d := range items {
		rec := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), signal.NodeID(d.Node), d.Message)
		for _, n := range d.Notes {
			rec = rec.WithNote(signal.NodeID(n.Node), n.Msg)
		}
		bag.Add(rec)
	}
}
