package preview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/gobrush"
)

const (
	fieldOfView  = 60.0
	nearDistance = 0.1
	maxPitch     = math.Pi/2 - 0.01
)

// Camera orbits a target point. Z is up, matching brush coordinates.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64
}

// NewCamera frames a sphere of the given radius around target.
func NewCamera(target mgl64.Vec3, radius float64) *Camera {
	if radius <= 0 {
		radius = 1
	}
	return &Camera{
		Target:   target,
		Distance: radius * 2.5,
		Yaw:      math.Pi / 4,
		Pitch:    math.Pi / 6,
	}
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)
	return c.Target.Add(mgl64.Vec3{cp * cy, cp * sy, sp}.Mul(c.Distance))
}

// AddAngle turns the camera, clamping pitch short of the poles.
func (c *Camera) AddAngle(yaw, pitch float64) {
	c.Yaw += yaw
	c.Pitch = mgl64.Clamp(c.Pitch+pitch, -maxPitch, maxPitch)
}

// Zoom scales the orbit distance.
func (c *Camera) Zoom(factor float64) {
	if factor > 0 {
		c.Distance *= factor
	}
}

// Matrix returns the combined projection and view matrix for a viewport.
func (c *Camera) Matrix(width, height int) mgl64.Mat4 {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	far := c.Distance * 10
	proj := mgl64.Perspective(mgl64.DegToRad(fieldOfView), aspect, nearDistance, far)
	view := mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 0, 1})
	return proj.Mul4(view)
}

// project maps p to screen coordinates. ok is false for points behind the
// near plane.
func project(m mgl64.Mat4, p mgl64.Vec3, width, height int) (x, y float32, ok bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip[3] < nearDistance {
		return 0, 0, false
	}
	nx, ny := clip[0]/clip[3], clip[1]/clip[3]
	x = float32((nx + 1) * 0.5 * float64(width))
	y = float32((1 - ny) * 0.5 * float64(height))
	return x, y, true
}

// nearPlane faces along the view direction, just past the projection's near
// distance. Points in front of it project safely.
func (c *Camera) nearPlane() gobrush.Plane {
	eye := c.Eye()
	forward := c.Target.Sub(eye).Normalize()
	at := eye.Add(forward.Mul(nearDistance * 2))
	return gobrush.NewPlane(forward, forward.Dot(at))
}

// clip cuts a convex loop down to the part in front of the near plane. It
// returns nil when nothing is left.
func (c *Camera) clip(loop []mgl64.Vec3) []mgl64.Vec3 {
	r := gobrush.NewPolygon(loop...).Split(c.nearPlane(), gobrush.DefaultSplitEpsilon)
	switch r.Side {
	case gobrush.SideFront:
		return loop
	case gobrush.SideSpanning:
		return r.Front.Vertices
	}
	return nil
}
