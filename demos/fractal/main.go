// fractal simulates a depth-6 grove tree (3,906 nodes) and renders it with
// a minimal perspective projection. The anchor sways and spins so every
// level's chained update is visibly exercised. A stress demo for the grove
// update scheduler.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/grove"
)

const (
	screenW = 1280
	screenH = 720
	depth   = 6

	camDist = 7.0
	focal   = 420.0
)

var levelColors = [depth][3]float32{
	{0.9, 0.8, 0.5},
	{0.8, 0.9, 0.5},
	{0.5, 0.9, 0.6},
	{0.5, 0.8, 0.9},
	{0.6, 0.5, 0.9},
	{0.9, 0.5, 0.8},
}

type quad struct {
	x, y, size float32
	z          float32
	level      int
}

type game struct {
	tree    *grove.Tree
	anchor  grove.Transform
	pixel   *ebiten.Image
	quads   []quad
	elapsed float32
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.elapsed += dt

	// Sway the anchor so the whole hierarchy visibly re-seeds from it.
	sin, cos := math.Sincos(float64(g.elapsed) * 0.3)
	g.anchor.Rotation = mgl32.QuatRotate(float32(sin)*0.4, mgl32.Vec3{0, 0, 1})
	g.anchor.Position = mgl32.Vec3{float32(cos) * 0.5, -1.5, 0}

	g.tree.Update(g.anchor, dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.quads = g.quads[:0]
	for k := 0; k < g.tree.Depth(); k++ {
		for _, m := range g.tree.Matrices(k) {
			pos := m.Position()
			z := pos[2] + camDist
			if z <= 0.1 {
				continue
			}
			// The first matrix column's length is the node's world scale.
			scale := mgl32.Vec3{m[0], m[4], m[8]}.Len()
			g.quads = append(g.quads, quad{
				x:     screenW/2 + focal*pos[0]/z,
				y:     screenH/2 - focal*pos[1]/z,
				size:  focal * scale / z,
				z:     z,
				level: k,
			})
		}
	}

	// Painter's order: far to near.
	sort.Slice(g.quads, func(i, j int) bool { return g.quads[i].z > g.quads[j].z })

	for _, q := range g.quads {
		if q.size < 0.5 {
			continue
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(q.size), float64(q.size))
		op.GeoM.Translate(float64(q.x-q.size/2), float64(q.y-q.size/2))
		c := levelColors[q.level]
		op.ColorScale.Scale(c[0], c[1], c[2], 1)
		screen.DrawImage(g.pixel, &op)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nnodes: %d\ndepth: %d", ebiten.ActualFPS(), g.tree.NodeCount(), depth))
}

func (g *game) Layout(int, int) (int, int) {
	return screenW, screenH
}

func main() {
	tree, err := grove.NewTree(grove.TreeConfig{
		Depth:     depth,
		SpinSpeed: math.Pi / 8,
		BaseScale: 1,
		Mesh:      "quad",
		Material:  "flat",
	})
	if err != nil {
		log.Fatalf("build tree: %v", err)
	}
	defer tree.Release()

	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("grove fractal")
	if err := ebiten.RunGame(&game{
		tree:   tree,
		anchor: grove.IdentityTransform(),
		pixel:  pixel,
	}); err != nil {
		log.Fatal(err)
	}
}
