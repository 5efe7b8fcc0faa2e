// Package grove is a data-parallel transform-propagation engine for
// procedurally generated scenes.
//
// Grove simulates two kinds of structures. A [Tree] is a fixed-depth
// hierarchy of nodes fanning out five children per parent; every tick the
// world position and orientation of each level is recomputed in parallel
// from the level above it, and the results are packed into flat arrays of
// 3x4 transform matrices ready for instanced rendering. A [Ring] is a flat
// collection of bodies orbiting a shared center, all mutually independent,
// updated behind a single barrier per tick.
//
// Grove is headless: it produces transforms, not pixels. A renderer (the
// demos use [Ebitengine]) consumes [Tree.Matrices] and [Ring.Bodies] each
// tick and draws them however it likes.
//
// # Quick start
//
//	tree, err := grove.NewTree(grove.TreeConfig{
//		Depth:     6,
//		SpinSpeed: math.Pi / 8,
//		BaseScale: 1,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer tree.Release()
//
//	anchor := grove.IdentityTransform()
//	for running {
//		tree.Update(anchor, dt)
//		for k := 0; k < tree.Depth(); k++ {
//			submitInstances(tree.Matrices(k)) // your renderer
//		}
//	}
//
// # Ticking
//
// All per-tick work is synchronous from the caller's perspective:
// [Tree.Update] and [Ring.Update] block until every node or body has been
// recomputed. Internally a tree tick updates the root synchronously, then
// runs one chained task per level, each gated on the previous level's
// completion, with each task's index range split across a worker pool.
// Nodes within a level never depend on each other, so no finer
// synchronization exists on the hot path.
//
// # Lifecycle
//
// Trees and rings allocate all of their storage up front in [NewTree] and
// [NewRing] and never resize it. Call [Tree.Release] or [Ring.Release]
// exactly once when done; using a released instance panics.
//
// [Ebitengine]: https://ebitengine.org
package grove
