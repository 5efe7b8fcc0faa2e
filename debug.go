package grove

import (
	"fmt"
	"os"
	"time"
)

// debugLog prints one tick's timing to stderr. Only called when the tree's
// debug mode is on.
func (t *Tree) debugLog(total time.Duration) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[grove] tick %d | depth %d | nodes %d | update: %v\n",
		t.tick, len(t.levels), t.NodeCount(), total)
}

// debugMaxNodeCount is the node count past which NewTree warns. Every extra
// level multiplies the count by FanOut, so deep configs get expensive fast.
const debugMaxNodeCount = 1 << 20

func debugCheckNodeCount(t *Tree) {
	if n := t.NodeCount(); n > debugMaxNodeCount {
		_, _ = fmt.Fprintf(os.Stderr,
			"[grove] warning: depth %d builds %d nodes (threshold %d)\n",
			len(t.levels), n, debugMaxNodeCount)
	}
}
