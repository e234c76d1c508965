// Copyright (c) 2024-2026, The SBRSIM Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package tracer

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/sbrsim/sbrsim/geometry"
	"github.com/sbrsim/sbrsim/radar"
	"github.com/sbrsim/sbrsim/scene"
	"github.com/sbrsim/sbrsim/types"
)

const (
	// DefaultDensityDeg is the default angular step of the ray grid.
	DefaultDensityDeg = 0.5
	// DefaultMaxBounces bounds the specular bounce depth per ray. The
	// ground reflection legs are handled by mirroring and do not count
	// against it.
	DefaultMaxBounces = 2

	// rayEpsilon keeps secondary rays from re-hitting their own facet.
	rayEpsilon = 1e-9
	// minLegLength guards the spreading-loss division when an antenna
	// sits on a reflecting surface.
	minLegLength = 1e-6
)

// Engine casts a solid-angle grid of rays from the transmit channel and
// collects specular paths back to the receive channel. An Engine is
// cheap; the simulation creates one per work unit so that the optional
// grid jitter stays reproducible regardless of scheduling.
type Engine struct {
	// Density is the angular grid step in degrees. Smaller steps sample
	// target surfaces more finely at proportionally higher cost.
	Density float64
	// MaxBounces is the specular bounce depth per ray.
	MaxBounces int
	// Jitter, when set, perturbs each ray direction uniformly within its
	// grid cell. Leave nil for a fully deterministic grid.
	Jitter *rand.Rand

	raysCast    int64
	pathsTraced int64
}

// NewEngine returns an engine with the given grid density in degrees and
// bounce depth. Non-positive arguments fall back to the defaults.
func NewEngine(densityDeg float64, maxBounces int) *Engine {
	if densityDeg <= 0 {
		densityDeg = DefaultDensityDeg
	}
	if maxBounces < 1 {
		maxBounces = DefaultMaxBounces
	}
	return &Engine{Density: densityDeg, MaxBounces: maxBounces}
}

// RaysCast returns the number of primary rays cast so far.
func (e *Engine) RaysCast() int64 {
	return atomic.LoadInt64(&e.raysCast)
}

// PathsTraced returns the number of receiver paths captured so far.
func (e *Engine) PathsTraced() int64 {
	return atomic.LoadInt64(&e.pathsTraced)
}

// angularWindow is a ray-grid region centered on one target's bounding
// sphere. The grid extends an integer number of density steps to either
// side of the center so that mirror-symmetric scenes trace through
// mirror-symmetric grids.
type angularWindow struct {
	azCenter, elCenter float64
	azHalf, elHalf     float64 // degrees, containment bounds
	azSteps, elSteps   int
}

// contains reports whether a direction given by grid angles falls inside
// the window, with azimuth compared on the circle.
func (w *angularWindow) contains(azDeg, elDeg float64) bool {
	if math.Abs(elDeg-w.elCenter) > w.elHalf {
		return false
	}
	d := math.Mod(azDeg-w.azCenter+540, 360) - 180
	return math.Abs(d) <= w.azHalf
}

// windowFor builds the grid window that covers one target's bounding
// sphere as seen from a point, padded by one grid step.
func windowFor(from types.Vec3, st *scene.SnapTarget, stepDeg float64) angularWindow {
	center, radius := st.Target.Mesh.Bounds().BoundingSphere()
	center = center.Add(st.Position)
	sep := center.Sub(from)
	d := sep.Length()
	if d <= radius {
		// Observer inside the bounding sphere: search the full sphere.
		return angularWindow{
			azHalf: 180, elHalf: 90,
			azSteps: int(math.Ceil(180 / stepDeg)),
			elSteps: int(math.Ceil(90 / stepDeg)),
		}
	}
	half := types.Rad2Deg(math.Asin(radius/d)) + stepDeg
	w := angularWindow{
		azCenter: sep.Azimuth(),
		elCenter: sep.Elevation(),
		elHalf:   half,
	}
	// Azimuth circles shrink with elevation; widen the azimuth span by
	// the worst-case latitude the window reaches.
	maxLat := math.Abs(w.elCenter) + half
	if maxLat >= 89 {
		w.azHalf = 180
	} else {
		w.azHalf = math.Min(180, half/math.Cos(types.Deg2Rad(maxLat)))
	}
	w.azSteps = int(math.Ceil(w.azHalf / stepDeg))
	w.elSteps = int(math.Ceil(w.elHalf / stepDeg))
	return w
}

// dirFromAngles converts grid azimuth/elevation in degrees to a unit
// direction.
func dirFromAngles(azDeg, elDeg float64) types.Vec3 {
	az, el := types.Deg2Rad(azDeg), types.Deg2Rad(elDeg)
	ce := math.Cos(el)
	return types.Vec3{X: ce * math.Cos(az), Y: ce * math.Sin(az), Z: math.Sin(el)}
}

// Trace runs the shoot-and-bounce pass for one channel pair against a
// snapshot and returns every captured path. Paths are appended in grid
// order, so repeated calls over the same inputs produce identical sets.
func (e *Engine) Trace(snap *scene.Snapshot, tx, rx *radar.Channel) PathSet {
	var ps PathSet
	if len(snap.Targets) == 0 {
		return ps
	}
	step := e.Density
	windows := make([]angularWindow, len(snap.Targets))
	for i, st := range snap.Targets {
		windows[i] = windowFor(tx.Location, st, step)
	}
	stepRad := types.Deg2Rad(step)
	for wi := range windows {
		w := &windows[wi]
		for ie := -w.elSteps; ie <= w.elSteps; ie++ {
			el := w.elCenter + float64(ie)*step
			if el < -90 || el > 90 {
				continue
			}
			for ia := -w.azSteps; ia <= w.azSteps; ia++ {
				az := w.azCenter + float64(ia)*step
				if covered(windows[:wi], az, el) {
					continue
				}
				ra, re := az, el
				if e.Jitter != nil {
					ra += (e.Jitter.Float64() - 0.5) * step
					re += (e.Jitter.Float64() - 0.5) * step
				}
				solidAngle := stepRad * stepRad * math.Cos(types.Deg2Rad(re))
				e.castRay(snap, tx, rx, dirFromAngles(ra, re), solidAngle, &ps)
			}
		}
	}
	return ps
}

// covered reports whether an earlier window already owns a grid angle
// pair, so overlapping windows never double-count a direction.
func covered(earlier []angularWindow, azDeg, elDeg float64) bool {
	for i := range earlier {
		if earlier[i].contains(azDeg, elDeg) {
			return true
		}
	}
	return false
}

// nearestHit intersects a ray against every non-ground target and
// returns the closest hit.
func nearestHit(snap *scene.Snapshot, r geometry.Ray) (geometry.Hit, *scene.SnapTarget, bool) {
	var best geometry.Hit
	var owner *scene.SnapTarget
	tMax := math.Inf(1)
	for _, st := range snap.Targets {
		if hit, ok := st.Intersect(r, rayEpsilon, tMax); ok {
			best, owner, tMax = hit, st, hit.T
		}
	}
	return best, owner, owner != nil
}

// castRay walks one primary ray through its specular bounces, capturing
// receiver paths at every surface hit.
func (e *Engine) castRay(snap *scene.Snapshot, tx, rx *radar.Channel,
	dir types.Vec3, solidAngle float64, ps *PathSet) {
	atomic.AddInt64(&e.raysCast, 1)

	txGain := tx.GainAmplitude(dir)
	ray := geometry.Ray{Origin: tx.Location, Dir: dir}
	traveled := 0.0
	carried := complex(1, 0) // product of bounce reflection coefficients
	for bounce := 1; bounce <= e.MaxBounces; bounce++ {
		hit, st, ok := nearestHit(snap, ray)
		if !ok {
			return
		}
		traveled += hit.T
		e.capture(snap, tx, rx, txGain, ray, hit, st, traveled, carried,
			solidAngle, bounce, ps)

		eps, hasEps := st.Target.SurfacePermittivity(hit.Triangle)
		cosInc := -ray.Dir.Dot(hit.Normal)
		carried *= Reflection(eps, hasEps, cosInc)
		ray = geometry.Ray{Origin: hit.Point, Dir: ray.Dir.Reflect(hit.Normal).Normalize()}
	}
}

// leg is one way of connecting a surface hit to a fixed endpoint, either
// directly or via the ground image.
type leg struct {
	endpoint types.Vec3 // tx/rx location, mirrored for ground legs
	antenna  types.Vec3 // true antenna location
	via      types.Vec3 // ground reflection point, ground legs only
	gamma    complex128 // ground reflection coefficient, 1 for direct
	grounded bool
}

// capture emits the receiver paths available from one surface hit: the
// direct return plus, when the scene has a ground plane, the mirrored
// inbound and outbound variants that make up the multipath returns. The
// inbound ground variant only applies at the first bounce, where the
// mirrored illumination geometry is exact.
func (e *Engine) capture(snap *scene.Snapshot, tx, rx *radar.Channel, txGain float64,
	ray geometry.Ray, hit geometry.Hit, st *scene.SnapTarget,
	traveled float64, carried complex128, solidAngle float64, bounce int, ps *PathSet) {

	inLegs := make([]leg, 0, 2)
	inLegs = append(inLegs, leg{endpoint: tx.Location, antenna: tx.Location, gamma: 1})
	if bounce == 1 && snap.Ground != nil {
		if l, ok := groundLeg(snap, tx.Location, hit); ok {
			inLegs = append(inLegs, l)
		}
	}
	outLegs := make([]leg, 0, 2)
	if l, ok := directLeg(snap, rx.Location, hit); ok {
		outLegs = append(outLegs, l)
	}
	if snap.Ground != nil {
		if l, ok := groundLeg(snap, rx.Location, hit); ok {
			outLegs = append(outLegs, l)
		}
	}
	if len(outLegs) == 0 {
		return
	}

	eps, hasEps := st.Target.SurfacePermittivity(hit.Triangle)
	vel := st.Target.Velocity

	for ii := range inLegs {
		in := &inLegs[ii]
		var inDir types.Vec3 // propagation direction into the surface
		var inLen float64
		inGain, inWeight := txGain, carried
		if in.grounded {
			inDir = hit.Point.Sub(in.endpoint).Normalize()
			// Skip ground illumination of a back face.
			if hit.Normal.Dot(inDir) >= 0 {
				continue
			}
			inLen = math.Max(hit.Point.DistanceTo(in.endpoint), minLegLength)
			inGain = tx.GainAmplitude(in.via.Sub(in.antenna).Normalize())
			inWeight = in.gamma
		} else {
			// The traced ray itself; traveled is the unfolded length over
			// all bounces so far.
			inDir = ray.Dir
			inLen = math.Max(traveled, minLegLength)
		}
		// Captured facet area: the ray tube cross-section at the hit.
		facetArea := solidAngle * inLen * inLen

		for oi := range outLegs {
			out := &outLegs[oi]
			outDir := out.endpoint.Sub(hit.Point).Normalize() // propagation off the surface
			if hit.Normal.Dot(outDir) <= 0 {
				continue
			}
			outLen := math.Max(hit.Point.DistanceTo(out.endpoint), minLegLength)

			// Specular scattering coefficient at the bisector angle, so a
			// path and its tx/rx-swapped twin weigh identically.
			bisector := outDir.Sub(inDir).Normalize()
			gammaS := Reflection(eps, hasEps, math.Abs(bisector.Dot(hit.Normal)))

			arrDir := hit.Point.Sub(rx.Location).Normalize()
			if out.grounded {
				arrDir = out.via.Sub(rx.Location).Normalize()
			}
			rxGain := rx.GainAmplitude(arrDir)

			amp := complex(inGain*rxGain*facetArea/(4*math.Pi*inLen*outLen), 0) *
				inWeight * gammaS * out.gamma
			if amp == 0 {
				continue
			}

			rate := vel.Dot(inDir) - vel.Dot(outDir)

			bounces := bounce
			if in.grounded {
				bounces++
			}
			if out.grounded {
				bounces++
			}
			ps.Add(Path{
				Length:    inLen + outLen,
				RangeRate: rate,
				Bounces:   bounces,
				Amplitude: amp,
			})
			atomic.AddInt64(&e.pathsTraced, 1)
		}
	}
}

// directLeg connects a hit point straight to an antenna, if the surface
// faces it and no target blocks the segment.
func directLeg(snap *scene.Snapshot, antenna types.Vec3, hit geometry.Hit) (leg, bool) {
	outDir := antenna.Sub(hit.Point).Normalize()
	if hit.Normal.Dot(outDir) <= 0 {
		return leg{}, false
	}
	if snap.Occluded(hit.Point, antenna) {
		return leg{}, false
	}
	return leg{endpoint: antenna, antenna: antenna, gamma: 1}, true
}

// groundLeg connects a hit point to an antenna via one specular ground
// reflection, using the antenna's mirror image across the ground plane.
func groundLeg(snap *scene.Snapshot, antenna types.Vec3, hit geometry.Hit) (leg, bool) {
	g := snap.Ground
	hh, ha := g.Height(hit.Point), g.Height(antenna)
	// Both endpoints must sit on the reflecting side of the plane.
	if hh <= 0 || ha <= 0 {
		return leg{}, false
	}
	image := g.Mirror(antenna)
	span := image.Sub(hit.Point)
	total := span.Length()
	if total < minLegLength {
		return leg{}, false
	}
	// The segment hit→image crosses the plane at the reflection point.
	t := hh / (hh + ha)
	p := hit.Point.Add(span.Scale(t))
	if snap.Occluded(hit.Point, p) || snap.Occluded(p, antenna) {
		return leg{}, false
	}
	eps, hasEps := g.Target.SurfacePermittivity(-1)
	cosInc := math.Abs(span.Normalize().Dot(g.Normal))
	return leg{
		endpoint: image,
		antenna:  antenna,
		via:      p,
		gamma:    Reflection(eps, hasEps, cosInc),
		grounded: true,
	}, true
}
