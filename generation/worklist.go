package generation

import (
	"math/rand"

	"dungeon-layout/components"

	"github.com/zyedidia/generic/queue"
)

// Worklist holds rooms waiting to grow children
type Worklist interface {
	Push(room *components.Room)
	Pop(rng *rand.Rand) *components.Room
	Len() int
	Reset()
}

// NewWorklist returns a FIFO worklist when randomPickChance is 0, otherwise a
// worklist that pops a random queued room with that probability
func NewWorklist(randomPickChance float64) Worklist {
	if randomPickChance <= 0 {
		return newFIFOWorklist()
	}
	return &biasedWorklist{chance: randomPickChance}
}

// fifoWorklist grows rooms strictly breadth first
type fifoWorklist struct {
	q *queue.Queue[*components.Room]
	n int
}

func newFIFOWorklist() *fifoWorklist {
	return &fifoWorklist{q: queue.New[*components.Room]()}
}

func (w *fifoWorklist) Push(room *components.Room) {
	w.q.Enqueue(room)
	w.n++
}

func (w *fifoWorklist) Pop(*rand.Rand) *components.Room {
	w.n--
	return w.q.Dequeue()
}

func (w *fifoWorklist) Len() int {
	return w.n
}

func (w *fifoWorklist) Reset() {
	w.q = queue.New[*components.Room]()
	w.n = 0
}

// biasedWorklist is breadth first except that, with probability chance, a
// random queued room is grown next
type biasedWorklist struct {
	items  []*components.Room
	chance float64
}

func (w *biasedWorklist) Push(room *components.Room) {
	w.items = append(w.items, room)
}

func (w *biasedWorklist) Pop(rng *rand.Rand) *components.Room {
	i := 0
	if len(w.items) > 1 && rng.Float64() < w.chance {
		i = rng.Intn(len(w.items))
	}

	room := w.items[i]
	w.items = append(w.items[:i], w.items[i+1:]...)
	return room
}

func (w *biasedWorklist) Len() int {
	return len(w.items)
}

func (w *biasedWorklist) Reset() {
	w.items = w.items[:0]
}
