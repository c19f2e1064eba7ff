package queue

// Bounded retains the k smallest-distance items offered to it.
//
// It is backed by a max-heap: the root is always the worst retained item, so a
// new candidate only has to be compared against the root.
type Bounded struct {
	k    int
	heap maxHeap
}

// NewBounded creates a Bounded queue holding at most k items.
// k must be positive.
func NewBounded(k int) *Bounded {
	if k <= 0 {
		panic("queue: bounded capacity must be positive")
	}
	return &Bounded{k: k, heap: make(maxHeap, 0, k)}
}

// Cap returns the maximum number of retained items.
func (b *Bounded) Cap() int { return b.k }

// Len returns the number of retained items.
func (b *Bounded) Len() int { return len(b.heap) }

// Worst returns the retained item with the largest distance.
func (b *Bounded) Worst() (Item, bool) {
	if len(b.heap) == 0 {
		return Item{}, false
	}
	return b.heap[0], true
}

// Offer proposes an item. It reports whether the item was retained and, if
// retaining it evicted another item, returns the evicted one.
//
// When the queue is full the candidate is retained only if its distance is
// strictly smaller than the current worst.
func (b *Bounded) Offer(index int, distance float64) (accepted bool, evicted Item, didEvict bool) {
	item := Item{Index: index, Distance: distance}
	if len(b.heap) < b.k {
		b.heap.push(item)
		return true, Item{}, false
	}
	worst := b.heap[0]
	if distance >= worst.Distance {
		return false, Item{}, false
	}
	b.heap.replaceRoot(item)
	return true, worst, true
}

// Drain removes every retained item and returns them in ascending distance order.
func (b *Bounded) Drain() []Item {
	out := make([]Item, len(b.heap))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = b.heap.pop()
	}
	return out
}
