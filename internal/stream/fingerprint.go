package stream

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint digests the active layout: every active chunk index in order,
// then the kind, archetype and transform of each live owned entity. Two
// sessions driven with the same seed and inputs produce equal fingerprints.
func (s *Streamer) Fingerprint() string {
	h, _ := blake2b.New256(nil) // unkeyed New256 cannot fail
	var buf [8]byte
	putInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	for _, idx := range s.ActiveIndices() {
		c := s.active[idx]
		putInt(int64(idx))
		for _, id := range c.owned {
			tag, ok := s.store.Tags.Get(id)
			if !ok {
				continue
			}
			tr, _ := s.store.Transforms.Get(id)
			putInt(int64(tag.Kind))
			h.Write([]byte(tag.Archetype))
			putFloat(tr.X)
			putFloat(tr.Y)
			putFloat(tr.Z)
			putFloat(tr.Yaw)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
