package qmedian

// MaxCapacity is the largest supported buffer capacity. Positions and order
// tags are single bytes.
const MaxCapacity = 255

// ring holds the cursors of a circular store. It maps logical positions
// (0 = oldest) to physical slots and keeps full/empty apart without wasting a
// slot.
type ring struct {
	capacity uint8
	head     uint8 // next write slot
	tail     uint8 // oldest entry
	full     bool
}

func newRing(capacity uint8) ring {
	return ring{capacity: capacity}
}

// count is recomputed from the cursors on every call.
func (r *ring) count() int {
	if r.full {
		return int(r.capacity)
	}
	if r.head >= r.tail {
		return int(r.head - r.tail)
	}
	return int(r.capacity) + int(r.head) - int(r.tail)
}

func (r *ring) empty() bool {
	return !r.full && r.head == r.tail
}

// physical maps logical position i to its slot.
func (r *ring) physical(i int) int {
	return (int(r.tail) + i) % int(r.capacity)
}

func (r *ring) next(pos uint8) uint8 {
	return uint8((int(pos) + 1) % int(r.capacity))
}

// push claims the head slot. When full the oldest entry is dropped first.
func (r *ring) push() {
	if r.full {
		r.tail = r.next(r.tail)
	}
	r.head = r.next(r.head)
	r.full = r.head == r.tail
}

// pop releases the tail slot. Callers check empty first.
func (r *ring) pop() {
	r.tail = r.next(r.tail)
	r.full = false
}

func (r *ring) reset() {
	r.tail = r.head
	r.full = false
}
