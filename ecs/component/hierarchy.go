package component

// Hierarchy links a node to its parent and ordered children. Entity handles
// are stored as uint64 (ecs.Entity) to avoid an import cycle.
type Hierarchy struct {
	Parent   uint64
	Children []uint64
}

var HierarchyComponent = NewComponent[Hierarchy]()

// Active is the node's own active flag; a node is active in the hierarchy
// only when it and every ancestor are active.
type Active struct {
	Self bool
}

var ActiveComponent = NewComponent[Active]()
