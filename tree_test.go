package grove

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func mustTree(t *testing.T, cfg TreeConfig) *Tree {
	t.Helper()
	tree, err := NewTree(cfg)
	if err != nil {
		t.Fatalf("NewTree(%+v): %v", cfg, err)
	}
	t.Cleanup(tree.Release)
	return tree
}

// --- Config validation ---

func TestTreeConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  TreeConfig
		ok   bool
	}{
		{"minimal", TreeConfig{Depth: 1, BaseScale: 1}, true},
		{"deep", TreeConfig{Depth: 6, BaseScale: 0.5, SpinSpeed: 1}, true},
		{"zero depth", TreeConfig{Depth: 0, BaseScale: 1}, false},
		{"negative depth", TreeConfig{Depth: -3, BaseScale: 1}, false},
		{"zero scale", TreeConfig{Depth: 2, BaseScale: 0}, false},
		{"negative scale", TreeConfig{Depth: 2, BaseScale: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewTree(tt.cfg)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				tree.Release()
				return
			}
			if err == nil {
				tree.Release()
				t.Fatal("expected error")
			}
			if tree != nil {
				t.Error("error must not return a partial tree")
			}
		})
	}
}

// --- Shape ---

func TestTreeShape(t *testing.T) {
	tree := mustTree(t, TreeConfig{Depth: 3, BaseScale: 1})

	wantSizes := []int{1, 5, 25}
	if tree.Depth() != len(wantSizes) {
		t.Fatalf("depth = %d, want %d", tree.Depth(), len(wantSizes))
	}
	for k, want := range wantSizes {
		if got := tree.LevelSize(k); got != want {
			t.Errorf("level %d size = %d, want %d", k, got, want)
		}
		if got := len(tree.Matrices(k)); got != want {
			t.Errorf("level %d matrix count = %d, want %d", k, got, want)
		}
	}
	if got := tree.NodeCount(); got != 31 {
		t.Errorf("node count = %d, want 31", got)
	}
}

// Every node's slot (i mod FanOut) selects its fixed direction and
// orientation, identically at every branch point.
func TestTreeSlotAssignment(t *testing.T) {
	tree := mustTree(t, TreeConfig{Depth: 3, BaseScale: 1})

	for k := 1; k < tree.Depth(); k++ {
		nodes := tree.levels[k].nodes
		for i := range nodes {
			slot := i % FanOut
			assertVec3(t, "direction", nodes[i].direction, childDirections[slot])
			assertQuat(t, "local rotation", nodes[i].localRotation, childOrientations[slot])
		}
	}
}

// The parent relation is index arithmetic: child block i belongs to parent
// i/FanOut. Verify by marking each parent and checking every child's
// computed position references it.
func TestTreeParentIndexing(t *testing.T) {
	tree := mustTree(t, TreeConfig{Depth: 3, BaseScale: 1})

	// Give every level-1 node a distinct position, then update level 2 and
	// check each child landed relative to the right parent.
	parents := tree.levels[1].nodes
	for i := range parents {
		parents[i].worldPosition = mgl32.Vec3{float32(i) * 100, 0, 0}
		parents[i].worldRotation = mgl32.QuatIdent()
	}

	tp := tickParams{spinDelta: 0, objectScale: 1}
	tree.updateLevel(2, tp, 0, tree.LevelSize(2))

	children := tree.levels[2].nodes
	for i := range children {
		p := i / FanOut
		offset := children[i].worldPosition.Sub(parents[p].worldPosition)
		// offsetDistance * levelScale(1, 2) = 1.5 * 0.25
		assertVec3(t, "child offset", offset, childDirections[i%FanOut].Mul(0.375))
	}
}

// --- Lifecycle ---

func TestTreeReleaseExactlyOnce(t *testing.T) {
	tree, err := NewTree(TreeConfig{Depth: 2, BaseScale: 1})
	if err != nil {
		t.Fatal(err)
	}
	tree.Release()

	assertPanics(t, "double release", tree.Release)
	assertPanics(t, "update after release", func() {
		tree.Update(IdentityTransform(), 0.1)
	})
	assertPanics(t, "matrices after release", func() {
		tree.Matrices(0)
	})
}

func TestTreeOpaqueIdentifiers(t *testing.T) {
	cfg := TreeConfig{Depth: 1, BaseScale: 1, Mesh: "cube", Material: "bark"}
	tree := mustTree(t, cfg)
	if got := tree.Config(); got.Mesh != "cube" || got.Material != "bark" {
		t.Errorf("config = %+v, want mesh/material carried through", got)
	}
}
