package grove

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// FanOut is the fixed number of children per tree node.
const FanOut = 5

// offsetDistance is how far a child sits from its parent, before the
// per-level scale is applied.
const offsetDistance = 1.5

// Each child slot (index i%FanOut within a parent's block) gets a fixed
// direction and orientation offset. The same tables apply at every branch
// point; together they are the only thing distinguishing siblings at build
// time.
var childDirections = [FanOut]mgl32.Vec3{
	{0, 1, 0},  // up
	{1, 0, 0},  // right
	{-1, 0, 0}, // left
	{0, 0, 1},  // forward
	{0, 0, -1}, // back
}

var childOrientations = [FanOut]mgl32.Quat{
	mgl32.QuatIdent(),
	mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{0, 0, 1}),
	mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}),
	mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0}),
	mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0}),
}

// TreeConfig configures a Tree. Depth and BaseScale are validated by
// NewTree; Mesh and Material are opaque identifiers carried through for the
// rendering sink and never interpreted by grove.
type TreeConfig struct {
	// Depth is the number of levels, including the root level. Must be >= 1.
	Depth int
	// SpinSpeed is each node's spin rate about its local Y axis, in radians
	// per second.
	SpinSpeed float32
	// BaseScale is the root's scale before the anchor's uniform scale is
	// applied. Each level below the root halves it. Must be > 0.
	BaseScale float32
	// Mesh and Material identify what the rendering sink should instance
	// for this tree. Opaque to grove.
	Mesh, Material string
}

func (c TreeConfig) validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("grove: tree depth %d, must be at least 1", c.Depth)
	}
	if !(c.BaseScale > 0) {
		return fmt.Errorf("grove: tree base scale %v, must be positive", c.BaseScale)
	}
	return nil
}

// Tree is a fixed-depth hierarchy of procedurally placed nodes. Level 0
// holds the single root; level k holds FanOut^k nodes in contiguous blocks
// of FanOut children per parent, so child i's parent is index i/FanOut in
// the level above and i%FanOut selects its slot tables.
//
// All storage is allocated by NewTree and freed by Release. A Tree is safe
// for use from one goroutine; Update parallelizes internally.
type Tree struct {
	cfg      TreeConfig
	levels   []level
	pool     *workerPool
	released bool
	debug    bool
	tick     uint64
}

// NewTree validates cfg, allocates every level, and assigns each node its
// fixed slot direction and orientation. On error no partial tree exists.
func NewTree(cfg TreeConfig) (*Tree, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	levels := make([]level, cfg.Depth)
	size := 1
	for k := range levels {
		nodes := make([]nodeState, size)
		for i := range nodes {
			nodes[i] = nodeState{
				direction:     childDirections[i%FanOut],
				localRotation: childOrientations[i%FanOut],
				worldRotation: mgl32.QuatIdent(),
			}
		}
		levels[k] = level{nodes: nodes, matrices: make([]Mat3x4, size)}
		size *= FanOut
	}

	t := &Tree{
		cfg:    cfg,
		levels: levels,
		pool:   newWorkerPool(runtime.GOMAXPROCS(0)),
	}
	debugCheckNodeCount(t)
	return t, nil
}

// Config returns the configuration the tree was built with.
func (t *Tree) Config() TreeConfig {
	return t.cfg
}

// Depth returns the number of levels.
func (t *Tree) Depth() int {
	return len(t.levels)
}

// LevelSize returns the number of nodes in level k.
func (t *Tree) LevelSize(k int) int {
	return len(t.levels[k].nodes)
}

// NodeCount returns the total number of nodes across all levels.
func (t *Tree) NodeCount() int {
	n := 0
	for k := range t.levels {
		n += len(t.levels[k].nodes)
	}
	return n
}

// Matrices returns level k's packed transform matrices, index-aligned with
// the level's nodes and refreshed by every Update. The returned slice is a
// view into the tree's storage: valid until Release, and MUST NOT be read
// while an Update is in progress.
func (t *Tree) Matrices(k int) []Mat3x4 {
	t.checkReleased("Matrices")
	return t.levels[k].matrices
}

// SetDebugMode enables or disables per-tick timing logs to stderr.
func (t *Tree) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// Release frees the tree's level storage and stops its workers. Must be
// called exactly once; releasing twice or using the tree afterwards panics.
// Never call Release while an Update is in flight.
func (t *Tree) Release() {
	t.checkReleased("Release")
	t.released = true
	t.pool.stop()
	t.levels = nil
}

func (t *Tree) checkReleased(op string) {
	if t.released {
		panic(fmt.Sprintf("grove: %s on released Tree", op))
	}
}
