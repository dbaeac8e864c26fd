package supportplane

import (
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/referenceframe"
	"go.viam.com/rdk/spatialmath"
	"gopkg.in/yaml.v3"
)

// Scene is a read-only snapshot of the collision objects known to the
// planning scene, plus any objects attached to the gripper.
type Scene struct {
	frame    string
	objects  []CollisionObject
	byName   map[string]int
	attached []CollisionObject
}

// NewScene builds a scene snapshot. Later objects shadow earlier ones with
// the same name.
func NewScene(frame string, objects, attached []CollisionObject) *Scene {
	s := &Scene{
		frame:    frame,
		objects:  objects,
		attached: attached,
		byName:   make(map[string]int, len(objects)),
	}
	for i, o := range objects {
		s.byName[o.Name] = i
	}
	return s
}

// Frame returns the reference frame of the snapshot.
func (s *Scene) Frame() string { return s.frame }

// Objects returns the collision objects in the snapshot.
func (s *Scene) Objects() []CollisionObject {
	return append([]CollisionObject(nil), s.objects...)
}

// Attached returns the objects attached to the gripper.
func (s *Scene) Attached() []CollisionObject {
	return append([]CollisionObject(nil), s.attached...)
}

// Object looks up a collision object by name.
func (s *Scene) Object(name string) (CollisionObject, error) {
	i, ok := s.byName[name]
	if !ok {
		return CollisionObject{}, fmt.Errorf("%q: %w", name, ErrObjectNotFound)
	}
	return s.objects[i], nil
}

// TopPlane derives the top surface plane of a named box in the scene, raised
// by clearance.
func (s *Scene) TopPlane(name string, clearance float64) (Plane, error) {
	obj, err := s.Object(name)
	if err != nil {
		return Plane{}, err
	}
	return PlaneFromBox(obj, clearance)
}

// PlacementHeight returns the z coordinate at which the attached object's
// center ends up when released on top of the named support object.
func (s *Scene) PlacementHeight(supportName string, clearance float64) (float64, error) {
	support, err := s.Object(supportName)
	if err != nil {
		return 0, err
	}
	if len(s.attached) == 0 {
		return 0, ErrNoAttachedObject
	}
	supportTop := support.Pose.Point().Z + support.Dims.Z/2
	return supportTop + s.attached[0].Dims.Z/2 + clearance, nil
}

// WorldState exports the snapshot as a world state with every collision
// object as an obstacle, for handing to a motion planner.
func (s *Scene) WorldState() (*referenceframe.WorldState, error) {
	var geometries []spatialmath.Geometry
	for _, o := range s.objects {
		geom, err := o.geometry()
		if err != nil {
			return nil, err
		}
		geometries = append(geometries, geom)
	}
	if len(geometries) == 0 {
		return referenceframe.NewWorldState(nil, nil)
	}
	gif := referenceframe.NewGeometriesInFrame(referenceframe.World, geometries)
	return referenceframe.NewWorldState([]*referenceframe.GeometriesInFrame{gif}, nil)
}

// geometry converts the collision object to its spatialmath geometry.
func (o CollisionObject) geometry() (spatialmath.Geometry, error) {
	switch o.Kind {
	case KindBox:
		return spatialmath.NewBox(o.Pose, o.Dims, o.Name)
	case KindCylinder:
		return spatialmath.NewCapsule(o.Pose, o.Dims.X, o.Dims.Z, o.Name)
	case KindSphere:
		return spatialmath.NewSphere(o.Pose, o.Dims.X, o.Name)
	default:
		return nil, fmt.Errorf("object %q: unknown geometry kind %d", o.Name, o.Kind)
	}
}

// ParseGeometryKind parses a scene file kind string.
func ParseGeometryKind(s string) (GeometryKind, error) {
	switch s {
	case "box":
		return KindBox, nil
	case "cylinder":
		return KindCylinder, nil
	case "sphere":
		return KindSphere, nil
	default:
		return 0, fmt.Errorf("unknown geometry kind %q", s)
	}
}

// sceneFile is the YAML form of a scene snapshot.
type sceneFile struct {
	Frame    string       `yaml:"frame"`
	Objects  []objectSpec `yaml:"objects"`
	Attached []objectSpec `yaml:"attached"`
}

// objectSpec is the YAML form of a collision object.
type objectSpec struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Dims     []float64 `yaml:"dims"`
	Position []float64 `yaml:"position"`
	RPY      []float64 `yaml:"rpy"`
}

// LoadScene reads a scene snapshot from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	var sf sceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scene file %s: %w", path, err)
	}
	if sf.Frame == "" {
		sf.Frame = "map"
	}
	objects, err := buildObjects(sf.Objects)
	if err != nil {
		return nil, err
	}
	attached, err := buildObjects(sf.Attached)
	if err != nil {
		return nil, err
	}
	return NewScene(sf.Frame, objects, attached), nil
}

func buildObjects(specs []objectSpec) ([]CollisionObject, error) {
	objects := make([]CollisionObject, 0, len(specs))
	for _, sp := range specs {
		obj, err := sp.collisionObject()
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (sp objectSpec) collisionObject() (CollisionObject, error) {
	if sp.Name == "" {
		return CollisionObject{}, fmt.Errorf("scene object is missing a name")
	}
	kind, err := ParseGeometryKind(sp.Kind)
	if err != nil {
		return CollisionObject{}, fmt.Errorf("object %q: %w", sp.Name, err)
	}
	if len(sp.Dims) != 3 {
		return CollisionObject{}, fmt.Errorf("object %q: dims needs 3 values, got %d", sp.Name, len(sp.Dims))
	}
	if len(sp.Position) != 3 {
		return CollisionObject{}, fmt.Errorf("object %q: position needs 3 values, got %d", sp.Name, len(sp.Position))
	}
	rpy := []float64{0, 0, 0}
	if sp.RPY != nil {
		if len(sp.RPY) != 3 {
			return CollisionObject{}, fmt.Errorf("object %q: rpy needs 3 values, got %d", sp.Name, len(sp.RPY))
		}
		rpy = sp.RPY
	}
	return CollisionObject{
		Name: sp.Name,
		Kind: kind,
		Dims: r3.Vector{X: sp.Dims[0], Y: sp.Dims[1], Z: sp.Dims[2]},
		Pose: eulerPose(r3.Vector{X: sp.Position[0], Y: sp.Position[1], Z: sp.Position[2]}, rpy[0], rpy[1], rpy[2]),
	}, nil
}
