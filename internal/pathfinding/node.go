package pathfinding

import "slices"

// MaxPooledNodes caps how many nodes a search context keeps for reuse
// between searches. Storage beyond the cap is released to the GC.
const MaxPooledNodes = 32000

const impassableCost = -1

// nodeID indexes a node in its context's arena.
type nodeID int32

const noNode nodeID = -1

// Node is the per-cell bookkeeping of one search.
type Node struct {
	Cell Cell
	// Cost is the traversal cost of the cell, negative when impassable.
	Cost float64
	// SmallestCost is the best known accumulated cost from the start,
	// -1 while undiscovered.
	SmallestCost float64
	// EstimateCost is SmallestCost plus the heuristic to the destination.
	EstimateCost float64
	Parent       nodeID
	Open         bool

	heapIndex int
}

func (n *Node) reinitialize(c Cell) {
	*n = Node{
		Cell:         c,
		SmallestCost: -1,
		EstimateCost: -1,
		Parent:       noNode,
		Open:         true,
		heapIndex:    -1,
	}
}

// nodeArena is the recycle pool. Nodes are only ever released all at once
// at the start of a search, so the free list is a watermark: ids below
// used are live, storage above it is recycled by the next alloc.
//
// Pointers returned by at are invalidated by alloc.
type nodeArena struct {
	nodes    []Node
	used     int
	recycled int
}

func (a *nodeArena) alloc(c Cell) nodeID {
	if a.used < len(a.nodes) {
		a.recycled++
	} else {
		a.nodes = append(a.nodes, Node{})
	}
	id := nodeID(a.used)
	a.used++
	a.nodes[id].reinitialize(c)
	return id
}

func (a *nodeArena) at(id nodeID) *Node {
	return &a.nodes[id]
}

func (a *nodeArena) len() int {
	return a.used
}

// reset releases every node to the pool.
func (a *nodeArena) reset() {
	if len(a.nodes) > MaxPooledNodes {
		a.nodes = slices.Clone(a.nodes[:MaxPooledNodes])
	}
	a.used = 0
	a.recycled = 0
}
