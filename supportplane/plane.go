package supportplane

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Adjust offsets and resizes a plane. The offsets shift every corner, then
// the extents grow (or shrink, when negative) the plane on each side. The
// returned corners are reordered to the canonical sampling order, so Adjust
// also normalizes planes derived from rotated boxes.
func (p Plane) Adjust(xExtend, yExtend, xOffset, yOffset float64) (Plane, error) {
	z := p[0].Z
	for _, c := range p[1:] {
		if c.Z != z {
			return Plane{}, ErrNotCoplanar
		}
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range p {
		minX = math.Min(minX, c.X+xOffset)
		maxX = math.Max(maxX, c.X+xOffset)
		minY = math.Min(minY, c.Y+yOffset)
		maxY = math.Max(maxY, c.Y+yOffset)
	}

	return Plane{
		{X: minX - xExtend, Y: minY - yExtend, Z: z},
		{X: maxX + xExtend, Y: minY - yExtend, Z: z},
		{X: maxX + xExtend, Y: maxY + yExtend, Z: z},
		{X: minX - xExtend, Y: maxY + yExtend, Z: z},
	}, nil
}

// PlaneFromBox derives the top surface plane of a box collision object,
// raised above the box by clearance. The box may be yawed but must not be
// rolled or pitched.
func PlaneFromBox(obj CollisionObject, clearance float64) (Plane, error) {
	if obj.Kind != KindBox {
		return Plane{}, fmt.Errorf("object %q: %w", obj.Name, ErrNotABox)
	}

	eu := obj.Pose.Orientation().EulerAngles()
	if eu.Roll != 0 || eu.Pitch != 0 {
		return Plane{}, fmt.Errorf("object %q: %w", obj.Name, ErrNotAxisAligned)
	}

	center := obj.Pose.Point()
	topZ := center.Z + obj.Dims.Z/2 + clearance
	halfW := obj.Dims.X / 2
	halfD := obj.Dims.Y / 2

	sin, cos := math.Sin(eu.Yaw), math.Cos(eu.Yaw)
	offsets := [4][2]float64{
		{halfW, halfD},
		{-halfW, halfD},
		{-halfW, -halfD},
		{halfW, -halfD},
	}

	var plane Plane
	for i, o := range offsets {
		plane[i] = r3.Vector{
			X: center.X + o[0]*cos - o[1]*sin,
			Y: center.Y + o[0]*sin + o[1]*cos,
			Z: topZ,
		}
	}
	return plane, nil
}
