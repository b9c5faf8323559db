package sha2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
)

const (
	// Size256 is the size, in bytes, of a SHA-256 digest.
	Size256 = 32
	// Size512 is the size, in bytes, of a SHA-512 digest.
	Size512 = 64
	// BlockSize256 is the block size, in bytes, of SHA-256.
	BlockSize256 = 64
	// BlockSize512 is the block size, in bytes, of SHA-512.
	BlockSize512 = 128

	maxBlockSize = BlockSize512
	maxRounds    = 80
)

// Standard errors for the sha2 package
var (
	ErrFinalized        = errors.New("sha2: hash already finalized")
	ErrUnknownAlgorithm = errors.New("sha2: unknown algorithm")
	ErrBufferOverflow   = errors.New("sha2: pending buffer exceeds block size")
)

// Word is the set of word widths the engine is defined over.
type Word interface {
	~uint32 | ~uint64
}

// State is the lifecycle position of an Engine.
type State int

const (
	// Ready means the engine holds the initial hash value and no input.
	Ready State = iota
	// Accumulating means at least one Update has been applied.
	Accumulating
	// Finalized is terminal until the next Init.
	Finalized
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Accumulating:
		return "accumulating"
	case Finalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// rotations holds two rotate-right amounts and a third amount, which is a
// rotation for the Σ functions and a plain right shift for the σ functions.
type rotations [3]uint

// params fixes one SHA-2 variant.
type params[W Word] struct {
	alg       Algorithm
	wordSize  int
	blockSize int
	size      int
	lenSize   int
	rounds    int
	iv        [8]W
	k         []W
	sum0      rotations
	sum1      rotations
	sigma0    rotations
	sigma1    rotations
}

// Hash is implemented by both engine instantiations.
type Hash interface {
	hash.Hash

	// Init resets the engine to the Ready state.
	Init()
	// Update absorbs p. It fails with ErrFinalized after Finalize.
	Update(p []byte) error
	// Finalize pads the message and returns the digest. The engine is
	// unusable until Init is called again.
	Finalize() (Digest, error)
	// State reports the lifecycle position.
	State() State
	// Algorithm reports the variant.
	Algorithm() Algorithm
}

var (
	_ Hash = (*Engine[uint32])(nil)
	_ Hash = (*Engine[uint64])(nil)
)

// Engine owns the state of one SHA-2 computation. It is not safe for
// concurrent use; independent engines share nothing and may run in parallel.
type Engine[W Word] struct {
	p *params[W]

	h     [8]W
	buf   [maxBlockSize]byte
	n     int
	lenHi uint64
	lenLo uint64
	state State

	w [maxRounds]W
}

// New256 returns an engine computing SHA-256.
func New256() *Engine[uint32] {
	e := &Engine[uint32]{p: params256}
	e.Init()
	return e
}

// New512 returns an engine computing SHA-512.
func New512() *Engine[uint64] {
	e := &Engine[uint64]{p: params512}
	e.Init()
	return e
}

// Init resets the state words to the initial hash value and discards any
// pending input and bit count.
func (e *Engine[W]) Init() {
	e.h = e.p.iv
	clear(e.buf[:])
	e.n = 0
	e.lenHi, e.lenLo = 0, 0
	e.state = Ready
}

// State reports the lifecycle position of the engine.
func (e *Engine[W]) State() State { return e.state }

// Algorithm reports the variant computed by the engine.
func (e *Engine[W]) Algorithm() Algorithm { return e.p.alg }

// Size returns the digest length in bytes.
func (e *Engine[W]) Size() int { return e.p.size }

// BlockSize returns the block length in bytes.
func (e *Engine[W]) BlockSize() int { return e.p.blockSize }

// Update absorbs p. Complete blocks are compressed immediately, so at most
// BlockSize-1 bytes stay pending between calls.
func (e *Engine[W]) Update(p []byte) error {
	if e.state == Finalized {
		return ErrFinalized
	}
	e.state = Accumulating

	bs := e.p.blockSize
	if e.n > 0 {
		c := copy(e.buf[e.n:bs], p)
		e.n += c
		p = p[c:]
		if e.n < bs {
			return nil
		}
		e.compress(e.buf[:bs])
		e.n = 0
	}
	for len(p) >= bs {
		e.compress(p[:bs])
		p = p[bs:]
	}
	e.n = copy(e.buf[:bs], p)

	if e.n >= bs {
		return ErrBufferOverflow
	}
	return nil
}

// Finalize appends the padding and the message bit length, compresses the
// final block(s) and returns the state words serialised big-endian.
//
// The bit counter is 128 bits wide. SHA-256 only encodes its low 64 bits;
// inputs of 2^64 bits or more are outside the algorithm's domain and are
// not detected.
func (e *Engine[W]) Finalize() (Digest, error) {
	if e.state == Finalized {
		return nil, ErrFinalized
	}

	bs, ls := e.p.blockSize, e.p.lenSize
	e.addBits(uint64(e.n) * 8)

	block := e.buf[:bs]
	block[e.n] = 0x80
	clear(block[e.n+1:])
	if e.n >= bs-ls {
		e.block(block)
		clear(block)
	}

	binary.BigEndian.PutUint64(block[bs-8:], e.lenLo)
	if ls == 16 {
		binary.BigEndian.PutUint64(block[bs-16:], e.lenHi)
	}
	e.block(block)

	d := make(Digest, e.p.size)
	for i, v := range e.h {
		e.p.store(d[i*e.p.wordSize:], v)
	}

	clear(e.buf[:])
	e.n = 0
	e.state = Finalized
	return d, nil
}

// Write implements io.Writer. It fails only after Finalize.
func (e *Engine[W]) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum appends the digest of the input so far to b. It finalizes a copy, so
// the caller can keep writing. Sum on a finalized engine appends nothing.
func (e *Engine[W]) Sum(b []byte) []byte {
	c := *e
	d, err := c.Finalize()
	if err != nil {
		return b
	}
	return append(b, d...)
}

// Reset is Init, for hash.Hash.
func (e *Engine[W]) Reset() { e.Init() }

// compress folds one full block into the state and counts its bits.
func (e *Engine[W]) compress(b []byte) {
	e.block(b)
	e.addBits(uint64(e.p.blockSize) * 8)
}

func (e *Engine[W]) addBits(n uint64) {
	lo := e.lenLo + n
	if lo < e.lenLo {
		e.lenHi++
	}
	e.lenLo = lo
}

func (p *params[W]) load(b []byte) W {
	if p.wordSize == 4 {
		return W(binary.BigEndian.Uint32(b))
	}
	return W(binary.BigEndian.Uint64(b))
}

func (p *params[W]) store(b []byte, v W) {
	if p.wordSize == 4 {
		binary.BigEndian.PutUint32(b, uint32(v))
		return
	}
	binary.BigEndian.PutUint64(b, uint64(v))
}
