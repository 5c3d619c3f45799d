package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// cacheKey: H(schema || options || content). Options that change the
// rendered output are part of the key; diagnostics limits are not.
func cacheKey(content []byte, opts Options) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte("wagner/" + strconv.FormatUint(uint64(diskCacheSchemaVersion), 10)))
	_, _ = h.Write([]byte{0, byte(opts.Hits), boolByte(opts.Inline), boolByte(opts.Env)})
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
