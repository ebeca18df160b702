package pathfinding

// openList is a binary heap of node ids ordered by EstimateCost. Equal
// estimates are ordered by cell X, then cell Y, so searches are reproducible
// regardless of insertion order.
type openList struct {
	ids   []nodeID
	arena *nodeArena
}

func (l openList) Len() int { return len(l.ids) }

func (l openList) Less(i, j int) bool {
	a, b := l.arena.at(l.ids[i]), l.arena.at(l.ids[j])
	if a.EstimateCost != b.EstimateCost {
		return a.EstimateCost < b.EstimateCost
	}
	if a.Cell.X != b.Cell.X {
		return a.Cell.X < b.Cell.X
	}
	return a.Cell.Y < b.Cell.Y
}

func (l openList) Swap(i, j int) {
	l.ids[i], l.ids[j] = l.ids[j], l.ids[i]
	l.arena.at(l.ids[i]).heapIndex = i
	l.arena.at(l.ids[j]).heapIndex = j
}

func (l *openList) Push(x interface{}) {
	id := x.(nodeID)
	l.arena.at(id).heapIndex = len(l.ids)
	l.ids = append(l.ids, id)
}

func (l *openList) Pop() interface{} {
	old := l.ids
	n := len(old)
	id := old[n-1]
	l.ids = old[:n-1]
	l.arena.at(id).heapIndex = -1
	return id
}

func (l *openList) clear() {
	l.ids = l.ids[:0]
}
