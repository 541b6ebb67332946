package qmedian

import "golang.org/x/exp/constraints"

// orderState is the physical arrangement of the entries.
type orderState uint8

const (
	// orderChronological: slots from tail onwards are in insertion order.
	// Push, Pop and Peek rely on it.
	orderChronological orderState = iota
	// orderByKey: a window from tail has been sorted by a key. Order tags
	// stamped just before the sort are the only record of insertion order.
	orderByKey
)

func (s orderState) String() string {
	if s == orderByKey {
		return "key-ordered"
	}
	return "chronological"
}

// Key selectors. Sorting and window statistics take one of these instead of
// duplicating the algorithm per field.
func valueKey[T Number, TT constraints.Unsigned](e *entry[T, TT]) T { return e.value }

func tagKey[T Number, TT constraints.Unsigned](e *entry[T, TT]) uint8 { return e.tag }

func intervalKey[T Number, TT constraints.Unsigned](e *entry[T, TT]) TT { return e.interval }

// sortWindow insertion-sorts the first n logical entries by key, in place.
// Windows are small and mostly sorted already, which suits insertion sort.
func sortWindow[T Number, TT constraints.Unsigned, K Number](items []entry[T, TT], r *ring, n int, key func(e *entry[T, TT]) K) {
	for i := 1; i < n; i++ {
		tmp := items[r.physical(i)]
		k := key(&tmp)
		j := i - 1
		for j >= 0 && key(&items[r.physical(j)]) > k {
			items[r.physical(j+1)] = items[r.physical(j)]
			j--
		}
		items[r.physical(j+1)] = tmp
	}
}

// orderBy moves the buffer into key order over its first n logical entries.
// Every entry is tagged with its chronological offset first, so the whole
// store can be restored even when n is shorter than the store.
func orderBy[T Number, R Number, TT constraints.Unsigned, K Number](b *Buffer[T, R, TT], n int, key func(e *entry[T, TT]) K) {
	b.restoreChronological()
	count := b.ring.count()
	if count == 0 {
		return
	}
	for i := 0; i < count; i++ {
		b.items[b.ring.physical(i)].tag = uint8(i)
	}
	sortWindow(b.items, &b.ring, n, key)
	b.order = orderByKey
}

// restoreChronological sorts the store back by order tag.
func (b *Buffer[T, R, TT]) restoreChronological() {
	if b.order == orderChronological {
		return
	}
	sortWindow(b.items, &b.ring, b.ring.count(), tagKey[T, TT])
	b.order = orderChronological
}
