package grove

import "github.com/go-gl/mathgl/mgl32"

// nodeState is the per-node simulation state. A single flat struct per node,
// stored contiguously per level, to keep the update kernels cache-friendly.
//
// direction and localRotation are fixed at build time and never change.
// worldRotation, worldPosition, and spinAngle are each written exactly once
// per tick, by exactly one unit of work.
type nodeState struct {
	// Fixed at build time
	direction     mgl32.Vec3 // unit offset direction from the parent
	localRotation mgl32.Quat // orientation offset relative to the parent

	// Recomputed every tick
	worldRotation mgl32.Quat
	worldPosition mgl32.Vec3
	spinAngle     float32 // accumulated spin about the local Y axis, [0, 2pi)
}

// level owns one tier of the tree: a contiguous node array and an
// index-aligned array of packed output matrices. Neither slice is ever
// resized after construction; parent/child relations are pure index
// arithmetic against FanOut, so they stay valid for the level's lifetime.
type level struct {
	nodes    []nodeState
	matrices []Mat3x4
}
