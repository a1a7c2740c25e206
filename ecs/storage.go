package ecs

// entityStore tracks entity generations and free ids. Slot ids start at 1 so
// that the zero Entity stays invalid.
type entityStore struct {
	gens  []slotGen
	alive []bool
	free  []slotID
	count int
}

func (s *entityStore) create() Entity {
	var id slotID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
		id = slotID(len(s.gens))
	}
	s.alive[id-1] = true
	s.count++
	return newEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.slot() - 1
	s.alive[idx] = false
	s.gens[idx]++
	s.free = append(s.free, e.slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.slot()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.alive[id-1] && s.gens[id-1] == e.gen()
}

// live returns alive entities in ascending slot order.
func (s *entityStore) live() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.alive {
		if ok {
			out = append(out, newEntity(slotID(i+1), s.gens[i]))
		}
	}
	return out
}
