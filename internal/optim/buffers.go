package optim

// GradBuffers is the pool of per-worker gradient accumulation buffers
// handed to the oracle.
//
// Buffer 0 aliases the control loop's main gradient vector, so its
// lifetime is the enclosing run; buffers 1..W-1 are private to the pool
// and released with it. The oracle accumulates into any subset of the
// buffers and must merge the result into buffer 0 before returning.
type GradBuffers struct {
	bufs [][]float64
}

// NewGradBuffers builds a pool of workers buffers, each the length of
// main. main becomes buffer 0; the remaining buffers are freshly
// allocated. Mostly useful to code that implements or tests an Oracle;
// the optimizer builds its own pool.
func NewGradBuffers(main []float64, workers int) *GradBuffers {
	bufs := make([][]float64, workers)
	bufs[0] = main
	for w := 1; w < workers; w++ {
		bufs[w] = make([]float64, len(main))
	}
	return &GradBuffers{bufs: bufs}
}

// Workers returns the number of buffers in the pool.
func (b *GradBuffers) Workers() int {
	return len(b.bufs)
}

// Buf returns worker id's accumulation buffer.
func (b *GradBuffers) Buf(id int) []float64 {
	return b.bufs[id]
}

// Main returns the merged-gradient buffer, an alias of buffer 0.
func (b *GradBuffers) Main() []float64 {
	return b.bufs[0]
}

// release drops the private buffers. The main buffer belongs to the
// caller and is left alone.
func (b *GradBuffers) release() {
	for w := 1; w < len(b.bufs); w++ {
		b.bufs[w] = nil
	}
	b.bufs = nil
}
