// SPDX-License-Identifier: MIT

// Package rankcache memoizes rank sequences of integer matrices modulo prime
// powers. Entries are keyed by the matrix content digest, the modulus and
// the exponent, so a cached value stays valid for as long as the matrix
// bytes do.
package rankcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/cockroachdb/pebble"
)

// ErrCorrupt reports a stored value that does not decode.
var ErrCorrupt = errors.New("rankcache: corrupt entry")

// Cache stores rank sequences. Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the ranks stored under key; ok is false on a miss.
	Get(key []byte) (ranks []int, ok bool, err error)
	Put(key []byte, ranks []int) error
	Close() error
}

// Key builds the lookup key for the ranks of a matrix with the given digest
// modulo p^e.
func Key(digest uint64, p *big.Int, e int) []byte {
	pb := p.Bytes()
	key := make([]byte, 0, 8+binary.MaxVarintLen64*2+len(pb))
	key = binary.BigEndian.AppendUint64(key, digest)
	key = binary.AppendUvarint(key, uint64(e))
	key = binary.AppendUvarint(key, uint64(len(pb)))

	return append(key, pb...)
}

func encode(ranks []int) []byte {
	buf := make([]byte, 0, binary.MaxVarintLen64*(len(ranks)+1))
	buf = binary.AppendUvarint(buf, uint64(len(ranks)))
	for _, r := range ranks {
		buf = binary.AppendUvarint(buf, uint64(r))
	}

	return buf
}

func decode(buf []byte) ([]int, error) {
	n, k := binary.Uvarint(buf)
	if k <= 0 {
		return nil, ErrCorrupt
	}
	buf = buf[k:]
	ranks := make([]int, 0, n)
	var (
		i uint64
		v uint64
	)
	for i = 0; i < n; i++ {
		v, k = binary.Uvarint(buf)
		if k <= 0 {
			return nil, ErrCorrupt
		}
		ranks = append(ranks, int(v))
		buf = buf[k:]
	}
	if len(buf) != 0 {
		return nil, ErrCorrupt
	}

	return ranks, nil
}

// Pebble is a Cache persisted in a pebble database directory.
type Pebble struct {
	db *pebble.DB
}

// WriteOptions used for every Put; a lost entry is recomputed, never wrong.
var WriteOptions = pebble.WriteOptions{Sync: false}

// OpenPebble opens (creating when needed) the cache stored in dir.
func OpenPebble(dir string) (*Pebble, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("rankcache: open %s: %w", dir, err)
	}

	return &Pebble{db: db}, nil
}

func (c *Pebble) Get(key []byte) ([]int, bool, error) {
	val, closer, err := c.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rankcache: get: %w", err)
	}
	defer closer.Close()
	ranks, err := decode(val)
	if err != nil {
		return nil, false, err
	}

	return ranks, true, nil
}

func (c *Pebble) Put(key []byte, ranks []int) error {
	if err := c.db.Set(key, encode(ranks), &WriteOptions); err != nil {
		return fmt.Errorf("rankcache: put: %w", err)
	}

	return nil
}

// Close flushes and closes the database.
func (c *Pebble) Close() error { return c.db.Close() }

type memory struct {
	mu sync.RWMutex
	m  map[string][]int
}

// Memory returns a process-local Cache.
func Memory() Cache {
	return &memory{m: make(map[string][]int)}
}

func (c *memory) Get(key []byte) ([]int, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.m[string(key)]
	if !ok {
		return nil, false, nil
	}

	return append([]int(nil), r...), true, nil
}

func (c *memory) Put(key []byte, ranks []int) error {
	c.mu.Lock()
	c.m[string(key)] = append([]int(nil), ranks...)
	c.mu.Unlock()

	return nil
}

func (c *memory) Close() error { return nil }
