package renderer

// Resources are refcounted. An object handle retains its mesh and material
// for as long as the object lives, so dropping the mesh handle after
// AddObject does not free the GPU buffers.

type tableEntry struct {
	refs    int
	destroy func(id uint64)
	retains []uint64
}

type handleTable struct {
	next    uint64
	entries map[uint64]*tableEntry
}

func newHandleTable() *handleTable {
	return &handleTable{entries: make(map[uint64]*tableEntry)}
}

// alloc registers a resource with one reference. Every id in retains gets
// an extra reference that is dropped when this resource is destroyed.
func (t *handleTable) alloc(destroy func(id uint64), retains ...uint64) uint64 {
	t.next++
	id := t.next
	for _, r := range retains {
		t.addRef(r)
	}
	t.entries[id] = &tableEntry{refs: 1, destroy: destroy, retains: retains}
	return id
}

func (t *handleTable) addRef(id uint64) {
	if e, ok := t.entries[id]; ok {
		e.refs++
	}
}

func (t *handleTable) release(id uint64) {
	e, ok := t.entries[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(t.entries, id)
	if e.destroy != nil {
		e.destroy(id)
	}
	for _, r := range e.retains {
		t.release(r)
	}
}

// refs reports the current reference count, zero if the id is gone.
func (t *handleTable) refs(id uint64) int {
	if e, ok := t.entries[id]; ok {
		return e.refs
	}
	return 0
}

// Handle is an opaque refcounted reference to a renderer-owned resource.
// The zero value is invalid.
type Handle struct {
	id    uint64
	table *handleTable
}

// Valid reports whether the handle refers to a live resource.
func (h Handle) Valid() bool {
	return h.table != nil && h.table.refs(h.id) > 0
}

// Release drops this handle's reference. The resource is freed once no
// handle or object retains it.
func (h Handle) Release() {
	if h.table != nil {
		h.table.release(h.id)
	}
}

type MeshHandle struct{ Handle }

type MaterialHandle struct{ Handle }

type ObjectHandle struct{ Handle }

type LightHandle struct{ Handle }
