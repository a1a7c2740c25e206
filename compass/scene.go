// Package compass adds a heading compass to the host HUD. It resolves the
// scene nodes it needs on every scene load, registers its renderers with the
// HUD culler and turns the needle every frame.
//
// The package only talks to the host through the interfaces below.
package compass

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hudcompass/config"
	"github.com/milk9111/hudcompass/prefabs"
)

// Node is a non-owning handle to a host scene node.
type Node interface {
	Name() string
	// Valid reports whether the host still owns the node.
	Valid() bool
	// Child resolves a slash-separated path below the node, inactive nodes
	// included.
	Child(path string) (Node, bool)
	// Descendants returns the node and its whole subtree, inactive included.
	Descendants() []Node

	Layer() int
	SetLayer(layer int)

	ActiveInHierarchy() bool
	SetActive(active bool)

	// Forward is the node's world-space forward (+Z) direction.
	Forward() mgl64.Vec3
	SetLocalPosition(p mgl64.Vec3)
	SetLocalScale(s mgl64.Vec3)
	SetLocalRotation(q mgl64.Quat)

	// HasRenderer reports whether the node carries a mesh renderer.
	HasRenderer() bool
}

// Scene is the host scene as seen by the add-on.
type Scene interface {
	// Find resolves an absolute path among active nodes.
	Find(path string) (Node, bool)
	// Culler returns the culler attached to node, if any.
	Culler(node Node) (Culler, bool)
	// Instantiate builds prefab as a child of parent.
	Instantiate(prefab prefabs.Prefab, parent Node) (Node, error)
	// Destroy removes node and its subtree.
	Destroy(node Node)
}

type Bucket int

const (
	BucketEnabled Bucket = iota
	BucketDisabled
)

func (b Bucket) String() string {
	if b == BucketEnabled {
		return "enabled"
	}
	return "disabled"
}

// Culler is the narrow write capability into the host culler's membership
// lists. Register adds the renderer to the master list and to bucket.
type Culler interface {
	Contains(bucket Bucket, renderer Node) bool
	Register(renderer Node, bucket Bucket)
}

// PrefabSource is an opened asset bundle.
type PrefabSource interface {
	LoadPrefab(name string) (prefabs.Prefab, error)
	Unload()
}

type PreferenceSource interface {
	Preferences() config.Preferences
}

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

func valid(n Node) bool {
	return n != nil && n.Valid()
}
