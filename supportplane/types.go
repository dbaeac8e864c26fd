package supportplane

import (
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

// GeometryKind identifies the primitive shape of a collision object.
type GeometryKind int

const (
	// KindBox is a rectangular box primitive.
	KindBox GeometryKind = iota
	// KindCylinder is a cylinder primitive.
	KindCylinder
	// KindSphere is a sphere primitive.
	KindSphere
)

func (k GeometryKind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Plane is the top surface of a support object, described by its four corner
// points at a common z. Pose sampling expects the corner order produced by
// Adjust: (minX,minY), (maxX,minY), (maxX,maxY), (minX,maxY). Planes derived
// from rotated boxes should be passed through Adjust to normalize the order.
type Plane [4]r3.Vector

// CollisionObject is a named primitive obstacle in a scene snapshot.
// Dims holds the full extents for a box; X is the radius for spheres and
// cylinders, Z the cylinder length.
type CollisionObject struct {
	Name string
	Kind GeometryKind
	Dims r3.Vector
	Pose spatialmath.Pose
}

// ObjectPlacement is a single generated pose for an instance of an object class.
type ObjectPlacement struct {
	ClassID    string
	InstanceID int // 1-based, unique within a PlacementList
	Pose       spatialmath.Pose
}

// PlacementList is a set of generated placements in a common reference frame.
type PlacementList struct {
	Frame      string
	Placements []ObjectPlacement
}

// Poses returns the bare poses of all placements, in order.
func (l *PlacementList) Poses() []spatialmath.Pose {
	poses := make([]spatialmath.Pose, 0, len(l.Placements))
	for _, p := range l.Placements {
		poses = append(poses, p.Pose)
	}
	return poses
}
