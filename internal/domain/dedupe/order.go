package dedupe

// node is one key in insertion order.
type node struct {
	key  string
	next *node
}

// order tracks keys oldest-first so the bounded containers can evict in
// O(1). It is not safe for concurrent use; owners hold their own lock.
type order struct {
	index   map[string]*node
	head    *node // oldest
	tail    *node // newest
	maxSize int
}

func newOrder(maxSize int) *order {
	return &order{index: make(map[string]*node), maxSize: maxSize}
}

func (o *order) has(key string) bool {
	_, ok := o.index[key]
	return ok
}

func (o *order) len() int { return len(o.index) }

// push records key as newest and returns the evicted key, if any.
func (o *order) push(key string) (evicted string, ok bool) {
	if o.has(key) {
		return "", false
	}
	if o.maxSize > 0 && len(o.index) >= o.maxSize {
		evicted, ok = o.popOldest()
	}
	n := &node{key: key}
	if o.tail == nil {
		o.head = n
	} else {
		o.tail.next = n
	}
	o.tail = n
	o.index[key] = n
	return evicted, ok
}

func (o *order) popOldest() (string, bool) {
	n := o.head
	if n == nil {
		return "", false
	}
	o.head = n.next
	if o.head == nil {
		o.tail = nil
	}
	delete(o.index, n.key)
	return n.key, true
}

// remove drops key wherever it sits in the list.
func (o *order) remove(key string) bool {
	target, ok := o.index[key]
	if !ok {
		return false
	}
	delete(o.index, key)
	if o.head == target {
		o.head = target.next
		if o.head == nil {
			o.tail = nil
		}
		return true
	}
	prev := o.head
	for prev != nil && prev.next != target {
		prev = prev.next
	}
	if prev != nil {
		prev.next = target.next
		if o.tail == target {
			o.tail = prev
		}
	}
	return true
}
