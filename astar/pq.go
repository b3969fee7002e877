package astar

import "github.com/zucenko/pathgrid/model"

type frontierItem struct {
	cell         *model.Cell
	fScore       int
	seq          int
	indexInQueue int
}

// frontier is a min-heap ordered by (fScore, seq).
type frontier []*frontierItem

func (queue frontier) Len() int { return len(queue) }
func (queue frontier) Less(i, j int) bool {
	if queue[i].fScore != queue[j].fScore {
		return queue[i].fScore < queue[j].fScore
	}
	return queue[i].seq < queue[j].seq
}
func (queue frontier) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.indexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *frontier) Pop() any {
	old := *queue
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.indexInQueue = -1
	*queue = old[:n-1]
	return item
}
