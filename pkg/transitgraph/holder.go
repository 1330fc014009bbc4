package transitgraph

import "sync/atomic"

// Holder hands out the current graph to queries and lets a reload build a
// replacement off to the side before swapping it in atomically. A partially
// built graph is never visible.
type Holder struct {
	current atomic.Pointer[Graph]
}

func NewHolder(graph *Graph) *Holder {
	holder := &Holder{}
	holder.current.Store(graph)
	return holder
}

func (h *Holder) Get() *Graph {
	return h.current.Load()
}

func (h *Holder) Swap(graph *Graph) {
	h.current.Store(graph)
}
