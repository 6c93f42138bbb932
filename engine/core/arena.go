package core

// Handle identifies a slot in an Arena. The generation makes handles to
// removed entities stale instead of aliasing whatever reuses the slot.
type Handle struct {
	Index uint32
	Gen   uint32
}

type slot[T any] struct {
	val   T
	gen   uint32
	live  bool
	dying bool
}

// Arena holds every entity of one kind in contiguous storage.
// Removal is deferred: Kill marks a slot, Sweep frees marked slots at
// the end of the tick so a collision pass never sees a slot disappear.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	dead  []uint32
	count int
}

// Insert stores v and returns its handle
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[idx]
	s.val = v
	s.gen++
	s.live = true
	s.dying = false
	a.count++
	return Handle{Index: idx, Gen: s.gen}
}

func (a *Arena[T]) valid(h Handle) bool {
	return int(h.Index) < len(a.slots) && a.slots[h.Index].gen == h.Gen && a.slots[h.Index].live
}

// Get returns the entity for h, or nil when h is stale
func (a *Arena[T]) Get(h Handle) *T {
	if !a.valid(h) {
		return nil
	}
	return &a.slots[h.Index].val
}

// Alive reports whether h is live and not yet scheduled for removal
func (a *Arena[T]) Alive(h Handle) bool {
	return a.valid(h) && !a.slots[h.Index].dying
}

// Kill schedules h for removal at the next Sweep. Killing twice is a no-op
// and Kill returns false in that case so callers can skip duplicate effects.
func (a *Arena[T]) Kill(h Handle) bool {
	if !a.Alive(h) {
		return false
	}
	a.slots[h.Index].dying = true
	a.dead = append(a.dead, h.Index)
	return true
}

// Each visits live, non-dying entities in slot order. The callback may
// Kill entities (including the current one) but must not Insert.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live || s.dying {
			continue
		}
		fn(Handle{Index: uint32(i), Gen: s.gen}, &s.val)
	}
}

// Sweep frees every slot killed since the last sweep
func (a *Arena[T]) Sweep() {
	var zero T
	for _, idx := range a.dead {
		s := &a.slots[idx]
		if !s.live {
			continue
		}
		s.live = false
		s.dying = false
		s.val = zero
		a.free = append(a.free, idx)
		a.count--
	}
	a.dead = a.dead[:0]
}

// Len returns the number of stored entities, including ones awaiting Sweep
func (a *Arena[T]) Len() int { return a.count }

// Live returns the number of entities not scheduled for removal
func (a *Arena[T]) Live() int { return a.count - len(a.dead) }

// Reset drops every entity. Outstanding handles become stale.
func (a *Arena[T]) Reset() {
	var zero T
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			s.live = false
			s.dying = false
			s.val = zero
		}
	}
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		a.free = append(a.free, uint32(i))
	}
	a.dead = a.dead[:0]
	a.count = 0
}
