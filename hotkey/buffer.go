package hotkey

// BufferCap is the maximum number of characters the typed buffer retains.
// Phrases longer than this cannot be matched.
const BufferCap = 80

// TypedBuffer is a bounded rolling history of recently typed characters.
// It has a single writer, the hook callback goroutine, and is only ever
// read by the phrase matcher on that same goroutine.
type TypedBuffer struct {
	runes []rune
	cap   int
}

// NewTypedBuffer returns a buffer capped at BufferCap characters.
func NewTypedBuffer() *TypedBuffer {
	return &TypedBuffer{cap: BufferCap}
}

// Append adds a character, discarding the oldest one if the cap is reached.
func (b *TypedBuffer) Append(ch rune) {
	b.runes = append(b.runes, ch)
	if len(b.runes) > b.cap {
		b.runes = b.runes[len(b.runes)-b.cap:]
	}
}

// TruncateLast drops the most recent character, mirroring a backspace.
func (b *TypedBuffer) TruncateLast() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Clear empties the buffer.
func (b *TypedBuffer) Clear() {
	b.runes = b.runes[:0]
}

// Len returns the number of buffered characters.
func (b *TypedBuffer) Len() int {
	return len(b.runes)
}

func (b *TypedBuffer) String() string {
	return string(b.runes)
}
