package grove

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnchorTween animates up to 4 float32 fields on a Transform
// simultaneously. Create one via the convenience constructors
// (TweenAnchorPosition, TweenAnchorScale) and call Update(dt) between
// simulation ticks; the next Tree.Update or Ring.Update picks the moved
// anchor up.
//
// There is no global animation manager — callers drive Update themselves.
type AnchorTween struct {
	tweens [4]*gween.Tween
	fields [4]*float32
	count  int
	Done   bool
}

// Update advances all tweens by dt seconds and writes values into the
// target fields.
func (g *AnchorTween) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenAnchorPosition creates an AnchorTween that moves a.Position to the
// given point over the specified duration using the easing function.
func TweenAnchorPosition(a *Transform, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *AnchorTween {
	g := &AnchorTween{count: 3}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(a.Position[i], to[i], duration, fn)
		g.fields[i] = &a.Position[i]
	}
	return g
}

// TweenAnchorScale creates an AnchorTween that animates a.Scale to the
// target value over the specified duration using the easing function.
func TweenAnchorScale(a *Transform, to float32, duration float32, fn ease.TweenFunc) *AnchorTween {
	g := &AnchorTween{count: 1}
	g.tweens[0] = gween.New(a.Scale, to, duration, fn)
	g.fields[0] = &a.Scale
	return g
}
