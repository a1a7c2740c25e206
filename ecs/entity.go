package ecs

import "fmt"

// Entity is a handle: the low 32 bits hold a 1-based slot, the high 32 bits
// count how often that slot has been recycled. The zero Entity is never
// alive.
type Entity uint64

type slotID uint32
type slotGen uint32

const slotBits = 32

func newEntity(slot slotID, gen slotGen) Entity {
	return Entity(gen)<<slotBits | Entity(slot)
}

func (e Entity) slot() slotID {
	return slotID(e & (1<<slotBits - 1))
}

func (e Entity) gen() slotGen {
	return slotGen(e >> slotBits)
}

// Valid reports whether e names a slot at all. Use IsAlive for liveness.
func (e Entity) Valid() bool {
	return e.slot() != 0
}

func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.slot(), e.gen())
}
