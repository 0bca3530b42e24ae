package renderer

// materialStore keeps material values CPU side; they reach the GPU as
// uniforms during the scene pass. Updates are queued and only become
// visible once the flushed command buffers run, so a frame draws either
// entirely old or entirely new values.
type materialStore struct {
	values  map[uint64]PbrMaterial
	pending []materialUpdate
}

type materialUpdate struct {
	id uint64
	m  PbrMaterial
}

func newMaterialStore() *materialStore {
	return &materialStore{values: make(map[uint64]PbrMaterial)}
}

func (s *materialStore) add(id uint64, m PbrMaterial) {
	s.values[id] = m
}

func (s *materialStore) get(id uint64) (PbrMaterial, bool) {
	m, ok := s.values[id]
	return m, ok
}

func (s *materialStore) remove(id uint64) {
	delete(s.values, id)
}

// update queues a full re-submission of the material under the same id.
func (s *materialStore) update(id uint64, m PbrMaterial) {
	s.pending = append(s.pending, materialUpdate{id: id, m: m})
}

// flush drains the pending queue into command buffers. Updates for ids
// that died in the meantime are dropped when the commands run.
func (s *materialStore) flush() CommandBuffers {
	if len(s.pending) == 0 {
		return nil
	}
	updates := make([]materialUpdate, len(s.pending))
	copy(updates, s.pending)
	s.pending = s.pending[:0]

	return CommandBuffers{func() {
		for _, u := range updates {
			if _, ok := s.values[u.id]; ok {
				s.values[u.id] = u.m
			}
		}
	}}
}
