// asteroids simulates a 2,000-body grove ring orbiting a drifting center.
// The ring anchor is animated with gween tweens between simulation ticks,
// the way a game would move a planet under its asteroid belt.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/grove"
	"github.com/tanema/gween/ease"
)

const (
	screenW = 1280
	screenH = 720
	bodies  = 2000

	camDist = 160.0
	focal   = 560.0
)

type game struct {
	ring   *grove.Ring
	anchor grove.Transform
	drift  *grove.AnchorTween
	pixel  *ebiten.Image
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	// Drift the anchor; when a tween lands, pick the next waypoint.
	g.drift.Update(dt)
	if g.drift.Done {
		next := mgl32.Vec3{
			rand.Float32()*40 - 20,
			rand.Float32()*20 - 10,
			rand.Float32()*40 - 20,
		}
		g.drift = grove.TweenAnchorPosition(&g.anchor, next, 6, ease.InOutQuad)
	}

	g.ring.Update(g.anchor, dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for _, b := range g.ring.Bodies() {
		z := b.Position[2] + camDist
		if z <= 1 {
			continue
		}
		x := screenW/2 + focal*b.Position[0]/z
		y := screenH/2 - focal*b.Position[1]/z
		size := focal * 1.2 / z

		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(size), float64(size))
		op.GeoM.Translate(float64(x-size/2), float64(y-size/2))
		// Dim with distance.
		v := float32(math.Min(1, 120/float64(z)))
		op.ColorScale.Scale(v, v, v*0.9, 1)
		screen.DrawImage(g.pixel, &op)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nbodies: %d", ebiten.ActualFPS(), g.ring.Len()))
}

func (g *game) Layout(int, int) (int, int) {
	return screenW, screenH
}

func main() {
	anchor := grove.IdentityTransform()
	anchor.Rotation = mgl32.QuatRotate(0.35, mgl32.Vec3{1, 0, 0})

	ring, err := grove.NewRing(grove.RingConfig{
		BodyCount:   bodies,
		Seed:        7,
		InnerRadius: 35,
		OuterRadius: 85,
		Height:      6,
		OrbitSpeed:  grove.Range{Min: 0.05, Max: 0.15},
		SpinSpeed:   grove.Range{Min: 0.2, Max: 1.4},
	}, anchor)
	if err != nil {
		log.Fatalf("build ring: %v", err)
	}
	defer ring.Release()

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	g := &game{
		ring:   ring,
		anchor: anchor,
		pixel:  pixel,
	}
	g.drift = grove.TweenAnchorPosition(&g.anchor, mgl32.Vec3{0, 10, 0}, 6, ease.InOutQuad)

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("grove asteroids")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
