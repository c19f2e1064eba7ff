// Package queue selects the k smallest distances out of a stream.
package queue

// Item is a (distance, index) pair. Index refers to a payload stored elsewhere.
type Item struct {
	Index    int
	Distance float64
}

// maxHeap is a binary heap of Items with the largest distance at the root.
type maxHeap []Item

func (h *maxHeap) push(it Item) {
	*h = append(*h, it)
	h.up(len(*h) - 1)
}

// pop removes the root. h must not be empty.
func (h *maxHeap) pop() Item {
	old := *h
	n := len(old) - 1
	root := old[0]
	old[0] = old[n]
	*h = old[:n]
	if n > 0 {
		h.down(0)
	}
	return root
}

// replaceRoot overwrites the root. h must not be empty.
func (h maxHeap) replaceRoot(it Item) {
	h[0] = it
	h.down(0)
}

func (h maxHeap) up(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if h[i].Distance <= h[p].Distance {
			return
		}
		h[i], h[p] = h[p], h[i]
		i = p
	}
}

func (h maxHeap) down(i int) {
	for {
		big := i
		if l := 2*i + 1; l < len(h) && h[l].Distance > h[big].Distance {
			big = l
		}
		if r := 2*i + 2; r < len(h) && h[r].Distance > h[big].Distance {
			big = r
		}
		if big == i {
			return
		}
		h[i], h[big] = h[big], h[i]
		i = big
	}
}
