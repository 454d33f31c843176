package pipe

// ring is a fixed-capacity circular byte buffer. It is not
// independently synchronized; the owning pipe's lock guards every
// access.
type ring struct {
	buf   []byte
	start int
	count int
}

// readable returns the number of buffered bytes.
func (r *ring) readable() int {
	return r.count
}

// writable returns the free capacity.
func (r *ring) writable() int {
	return len(r.buf) - r.count
}

// readPos returns the index of the oldest unread byte.
func (r *ring) readPos() int {
	return r.start
}

// writePos returns the index one past the newest buffered byte.
func (r *ring) writePos() int {
	return (r.start + r.count) % len(r.buf)
}

// span is a contiguous window into the buffer.
type span struct {
	off int
	n   int
}

// spans returns the one or two contiguous windows covering size bytes
// at pos. The second span is empty when the range does not wrap.
func (r *ring) spans(pos, size int) (span, span) {
	if pos+size <= len(r.buf) {
		return span{pos, size}, span{}
	}
	split := len(r.buf) - pos
	return span{pos, split}, span{0, size - split}
}

// advanceRead consumes n buffered bytes.
func (r *ring) advanceRead(n int) {
	r.start = (r.start + n) % len(r.buf)
	r.count -= n
}

// commitWrite publishes n freshly written bytes.
func (r *ring) commitWrite(n int) {
	r.count += n
}
