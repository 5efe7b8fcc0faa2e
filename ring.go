package grove

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// Body is one orbiting member of a Ring: a plain world-space position and
// orientation, refreshed once per tick, meant to be applied directly to a
// visual representation's transform.
type Body struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// RingConfig configures a Ring. All fields are validated by NewRing.
type RingConfig struct {
	// BodyCount is the number of bodies. Must be >= 1.
	BodyCount int
	// Seed drives the ring's random stream. Identical seeds reproduce
	// identical initial layouts and identical per-tick speed draws.
	Seed uint64
	// InnerRadius and OuterRadius bound the annulus bodies spawn in,
	// treated as an unordered pair. Both must be >= 0.
	InnerRadius, OuterRadius float32
	// Height is the thickness of the spawn band about the ring plane.
	// Bodies spawn within [-Height/2, Height/2]. Must be >= 0.
	Height float32
	// OrbitSpeed bounds the shared revolution rate drawn each tick, in
	// radians per second. Min <= Max, both >= 0.
	OrbitSpeed Range
	// SpinSpeed bounds the shared tumble rate drawn each tick, in radians
	// per second. Min <= Max, both >= 0.
	SpinSpeed Range
	// Clockwise reverses the orbit direction by negating the orbit axis.
	Clockwise bool
}

func (c RingConfig) validate() error {
	if c.BodyCount < 1 {
		return fmt.Errorf("grove: ring body count %d, must be at least 1", c.BodyCount)
	}
	if c.InnerRadius < 0 || c.OuterRadius < 0 {
		return fmt.Errorf("grove: ring radii (%v, %v), must be non-negative", c.InnerRadius, c.OuterRadius)
	}
	if c.Height < 0 {
		return fmt.Errorf("grove: ring height %v, must be non-negative", c.Height)
	}
	if err := validSpeedRange("orbit", c.OrbitSpeed); err != nil {
		return err
	}
	return validSpeedRange("spin", c.SpinSpeed)
}

func validSpeedRange(name string, r Range) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("grove: ring %s speed range [%v, %v], need 0 <= min <= max", name, r.Min, r.Max)
	}
	return nil
}

// Ring is a flat collection of bodies revolving around a shared anchor.
// Unlike a Tree's levels, bodies have no dependency on each other: one
// barrier per tick is the only synchronization.
//
// All storage is allocated by NewRing and freed by Release.
type Ring struct {
	cfg      RingConfig
	bodies   []Body
	rng      *rand.Rand
	pool     *workerPool
	released bool
}

// NewRing validates cfg and spawns cfg.BodyCount bodies over the annulus
// defined by the radii and height band, positioned and oriented by anchor.
// Initial orientations are uniform random Euler triples. On error no
// partial ring exists.
func NewRing(cfg RingConfig, anchor Transform) (*Ring, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, ringStream))
	lo, hi := cfg.InnerRadius, cfg.OuterRadius
	if lo > hi {
		lo, hi = hi, lo
	}

	bodies := make([]Body, cfg.BodyCount)
	for i := range bodies {
		radius := lerp32(lo, hi, rng.Float32())
		angle := rng.Float32() * spinTurn
		height := (rng.Float32() - 0.5) * cfg.Height

		sin, cos := math.Sincos(float64(angle))
		local := mgl32.Vec3{radius * float32(cos), height, radius * float32(sin)}

		bodies[i] = Body{
			Position: anchor.Position.Add(anchor.Rotation.Rotate(local)),
			Rotation: mgl32.AnglesToQuat(
				rng.Float32()*spinTurn,
				rng.Float32()*spinTurn,
				rng.Float32()*spinTurn,
				mgl32.XYZ),
		}
	}

	return &Ring{
		cfg:    cfg,
		bodies: bodies,
		rng:    rng,
		pool:   newWorkerPool(runtime.GOMAXPROCS(0)),
	}, nil
}

// ringStream is the fixed second PCG seed word, so a RingConfig seed alone
// identifies the stream.
const ringStream = 0x67726f7665 // "grove"

// Len returns the number of bodies.
func (r *Ring) Len() int {
	return len(r.bodies)
}

// Config returns the configuration the ring was built with.
func (r *Ring) Config() RingConfig {
	return r.cfg
}

// Bodies returns the ring's bodies, refreshed by every Update. The returned
// slice is a view into the ring's storage: valid until Release, and MUST
// NOT be read while an Update is in progress.
func (r *Ring) Bodies() []Body {
	r.checkReleased("Bodies")
	return r.bodies
}

// Update advances the ring by one tick. One orbit rate, one spin rate, and
// one shared spin axis are drawn from the ring's seeded stream; then every
// body revolves about the anchor's up axis through its position and tumbles
// about the shared axis, in parallel. Update blocks until all bodies are
// done.
//
// dt is the elapsed time in seconds and must be >= 0.
func (r *Ring) Update(anchor Transform, dt float32) {
	r.checkReleased("Update")
	if dt < 0 {
		panic(fmt.Sprintf("grove: negative dt %v", dt))
	}

	// Shared per-tick draws. All bodies see one instantaneous rate and one
	// tumble axis; only their individual state differs.
	orbitAngle := r.cfg.OrbitSpeed.random(r.rng) * dt
	spinAngle := r.cfg.SpinSpeed.random(r.rng) * dt
	tumbleAxis := randomUnitVec3(r.rng)

	axis := anchor.Up()
	if r.cfg.Clockwise {
		axis = axis.Mul(-1)
	}
	orbit := mgl32.QuatRotate(orbitAngle, axis)
	tumble := mgl32.QuatRotate(spinAngle, tumbleAxis)
	center := anchor.Position

	r.pool.run(len(r.bodies), func(start, end int) {
		for i := start; i < end; i++ {
			b := &r.bodies[i]
			b.Position = center.Add(orbit.Rotate(b.Position.Sub(center)))
			b.Rotation = tumble.Mul(b.Rotation)
		}
	})
}

// Release frees the ring's storage and stops its workers. Must be called
// exactly once; releasing twice or using the ring afterwards panics. Never
// call Release while an Update is in flight.
func (r *Ring) Release() {
	r.checkReleased("Release")
	r.released = true
	r.pool.stop()
	r.bodies = nil
}

func (r *Ring) checkReleased(op string) {
	if r.released {
		panic(fmt.Sprintf("grove: %s on released Ring", op))
	}
}

// randomUnitVec3 draws a uniformly distributed direction.
func randomUnitVec3(rng *rand.Rand) mgl32.Vec3 {
	z := rng.Float64()*2 - 1
	theta := rng.Float64() * spinTurn
	s := math.Sqrt(1 - z*z)
	sin, cos := math.Sincos(theta)
	return mgl32.Vec3{float32(s * cos), float32(s * sin), float32(z)}
}
