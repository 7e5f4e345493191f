package blocks

// QueueMode selects how the upcoming-shape queue is fed.
type QueueMode int

const (
	// QueueInfinite generates shapes on demand, forever.
	QueueInfinite QueueMode = iota
	// QueueFinite pre-generates a fixed number of shapes; once the hidden
	// backlog runs dry, consumed slots stay empty.
	QueueFinite
)

// MaxQueueSlots is the number of player-facing queue positions.
const MaxQueueSlots = 4

var slotCosts = map[int]int{2: 5000, 3: 15000, 4: 50000}

// SlotCost returns the unlock price of a queue slot. Slot 1 is free;
// unknown slots cost 0.
func SlotCost(slotNumber int) int {
	return slotCosts[slotNumber]
}

// QueueItem is a closed variant: either an active shape slot or a
// purchasable placeholder. The marker method keeps the set of kinds
// closed so a type switch over items is exhaustive.
type QueueItem interface {
	// ItemID is a session-unique, stable key assigned at creation. The
	// presentation layer keys removal/insert animations off it.
	ItemID() int
	queueItem()
}

// ShapeItem is a queue slot holding a placeable shape.
type ShapeItem struct {
	Shape Shape
	id    int
}

func (s ShapeItem) ItemID() int { return s.id }
func (ShapeItem) queueItem()    {}

// PurchasableItem is a locked queue slot offered for purchase.
type PurchasableItem struct {
	Cost       int
	SlotNumber int
	id         int
}

func (p PurchasableItem) ItemID() int { return p.id }
func (PurchasableItem) queueItem()    {}

// Queue manages the sequence of upcoming shapes and the purchasable
// slot unlocks. It is the one stateful component of the engine; all the
// board-facing operations stay pure.
type Queue struct {
	mode   QueueMode
	gen    *Generator
	items  []QueueItem
	hidden []Shape
	nextID int
}

// NewQueue initializes a queue with unlockedSlots active positions and
// purchasable placeholders for the rest. In finite mode, finiteCount
// shapes are pre-generated; those beyond the visible window wait in the
// hidden backlog. Panics on a nil generator.
func NewQueue(gen *Generator, mode QueueMode, unlockedSlots, finiteCount int) *Queue {
	if gen == nil {
		panic("blocks: queue needs a generator")
	}
	if unlockedSlots < 1 {
		unlockedSlots = 1
	}
	if unlockedSlots > MaxQueueSlots {
		unlockedSlots = MaxQueueSlots
	}
	q := &Queue{mode: mode, gen: gen, nextID: 1}

	if mode == QueueFinite {
		if finiteCount < unlockedSlots {
			finiteCount = unlockedSlots
		}
		pool := make([]Shape, finiteCount)
		for i := range pool {
			pool[i] = gen.Next()
		}
		for i := 0; i < unlockedSlots; i++ {
			q.items = append(q.items, ShapeItem{Shape: pool[i], id: q.takeID()})
		}
		q.hidden = pool[unlockedSlots:]
	} else {
		for i := 0; i < unlockedSlots; i++ {
			q.items = append(q.items, ShapeItem{Shape: gen.Next(), id: q.takeID()})
		}
	}

	for slot := unlockedSlots + 1; slot <= MaxQueueSlots; slot++ {
		q.items = append(q.items, PurchasableItem{
			Cost:       SlotCost(slot),
			SlotNumber: slot,
			id:         q.takeID(),
		})
	}
	return q
}

func (q *Queue) takeID() int {
	id := q.nextID
	q.nextID++
	return id
}

// Items returns the visible queue in order.
func (q *Queue) Items() []QueueItem {
	return append([]QueueItem(nil), q.items...)
}

// Shapes returns the shapes currently held in active slots, in queue
// order. Purchasable placeholders contribute nothing.
func (q *Queue) Shapes() []Shape {
	var out []Shape
	for _, item := range q.items {
		switch it := item.(type) {
		case ShapeItem:
			out = append(out, it.Shape)
		case PurchasableItem:
		}
	}
	return out
}

// Mode returns the queue's generation policy.
func (q *Queue) Mode() QueueMode {
	return q.mode
}

// HiddenCount returns how many pre-generated shapes remain beyond the
// visible window. Always zero in infinite mode.
func (q *Queue) HiddenCount() int {
	return len(q.hidden)
}

// Exhausted reports the finite-mode end condition: no hidden shapes left
// and no active slot holding one.
func (q *Queue) Exhausted() bool {
	if q.mode != QueueFinite || len(q.hidden) > 0 {
		return false
	}
	return len(q.Shapes()) == 0
}

// PurchaseSlot converts the purchasable placeholder at slotIndex into an
// active shape slot, deducting its cost from score. It returns the new
// score and whether the purchase happened; an index that is out of
// range, not purchasable, or unaffordable is a no-op.
func (q *Queue) PurchaseSlot(slotIndex, score int) (int, bool) {
	if slotIndex < 0 || slotIndex >= len(q.items) {
		return score, false
	}
	p, ok := q.items[slotIndex].(PurchasableItem)
	if !ok || score < p.Cost {
		return score, false
	}
	shape, ok := q.drawShape()
	if !ok {
		return score, false
	}
	q.items[slotIndex] = ShapeItem{Shape: shape, id: q.takeID()}
	return score - p.Cost, true
}

// ConsumeShape removes the shape at slotIndex for placement and refills
// the slot: from the generator in infinite mode, from the hidden backlog
// in finite mode. When the backlog is dry the slot is removed for good.
func (q *Queue) ConsumeShape(slotIndex int) (Shape, bool) {
	if slotIndex < 0 || slotIndex >= len(q.items) {
		return Shape{}, false
	}
	item, ok := q.items[slotIndex].(ShapeItem)
	if !ok {
		return Shape{}, false
	}
	if refill, ok := q.drawShape(); ok {
		q.items[slotIndex] = ShapeItem{Shape: refill, id: q.takeID()}
	} else {
		q.items = append(q.items[:slotIndex], q.items[slotIndex+1:]...)
	}
	return item.Shape, true
}

// RotateSlot replaces the shape at slotIndex with its clockwise
// rotation. The caller is responsible for checking that the slot's
// rotation menu is unlocked.
func (q *Queue) RotateSlot(slotIndex int) bool {
	if slotIndex < 0 || slotIndex >= len(q.items) {
		return false
	}
	item, ok := q.items[slotIndex].(ShapeItem)
	if !ok {
		return false
	}
	q.items[slotIndex] = ShapeItem{Shape: item.Shape.Rotate(), id: item.id}
	return true
}

func (q *Queue) drawShape() (Shape, bool) {
	if q.mode == QueueInfinite {
		return q.gen.Next(), true
	}
	if len(q.hidden) == 0 {
		return Shape{}, false
	}
	s := q.hidden[0]
	q.hidden = q.hidden[1:]
	return s, true
}
