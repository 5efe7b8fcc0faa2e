package grove

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// spinAxis is the local axis every node spins about. Which axis is an
// arbitrary convention; what matters is that it is the same one everywhere,
// every tick.
var spinAxis = mgl32.Vec3{0, 1, 0}

const spinTurn = 2 * math.Pi

// tickParams is computed once per tick and passed by value into every task
// for that tick. Tasks never read shared mutable globals.
type tickParams struct {
	spinDelta   float32 // radians of spin this tick
	objectScale float32 // anchor scale * base scale, before per-level halving
}

// advanceSpin accumulates a spin delta, wrapping into [0, 2pi). The wrap is
// continuous: a quaternion of angle a equals one of a+2pi, so wrapped and
// unwrapped angles produce identical rotations.
func advanceSpin(angle, delta float32) float32 {
	angle += delta
	if angle >= spinTurn || angle < 0 {
		angle = float32(math.Mod(float64(angle), spinTurn))
		if angle < 0 {
			angle += spinTurn
		}
	}
	return angle
}

// levelScale returns the node scale at level k: the object scale halved once
// per level below the root.
func levelScale(objectScale float32, k int) float32 {
	for ; k > 0; k-- {
		objectScale *= 0.5
	}
	return objectScale
}

// updateRoot recomputes the root from the anchor transform. One node; not
// worth a task.
func (t *Tree) updateRoot(anchor Transform, tp tickParams) {
	root := &t.levels[0].nodes[0]
	root.spinAngle = advanceSpin(root.spinAngle, tp.spinDelta)
	spin := mgl32.QuatRotate(root.spinAngle, spinAxis)
	root.worldRotation = anchor.Rotation.Mul(root.localRotation.Mul(spin))
	root.worldPosition = anchor.Position
	t.levels[0].matrices[0] = composeTRS(root.worldPosition, root.worldRotation, tp.objectScale)
}

// updateLevel recomputes nodes [start, end) of level li from the
// already-finalized level above it, and writes their packed matrices.
//
// Rotation composition order is fixed: parent, then the slot's local offset,
// then the node's own accumulated spin. Reordering changes the result.
func (t *Tree) updateLevel(li int, tp tickParams, start, end int) {
	parents := t.levels[li-1].nodes
	nodes := t.levels[li].nodes
	mats := t.levels[li].matrices

	// Tree shape is fixed at build time; a range whose parent indices
	// escape the level above is a logic bug, not a runtime condition.
	if end > len(nodes) || (end-1)/FanOut >= len(parents) {
		panic(fmt.Sprintf(
			"grove: level %d range [%d,%d) maps outside parent level (%d nodes)",
			li, start, end, len(parents)))
	}

	scale := levelScale(tp.objectScale, li)
	offset := offsetDistance * scale

	for i := start; i < end; i++ {
		p := &parents[i/FanOut]
		n := &nodes[i]

		n.spinAngle = advanceSpin(n.spinAngle, tp.spinDelta)
		spin := mgl32.QuatRotate(n.spinAngle, spinAxis)
		n.worldRotation = p.worldRotation.Mul(n.localRotation.Mul(spin))
		n.worldPosition = p.worldPosition.Add(
			p.worldRotation.Rotate(n.direction.Mul(offset)))

		mats[i] = composeTRS(n.worldPosition, n.worldRotation, scale)
	}
}
