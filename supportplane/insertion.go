package supportplane

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
)

// InsertionHeight returns the center-to-center distance at which an object
// class rests when inserted into or stacked on a support class, from the
// configured height table plus the object gap.
func (g *Generator) InsertionHeight(insertClass, supportClass string) (float64, error) {
	supportH, ok := g.cfg.ObjectHeights[supportClass]
	if !ok {
		return 0, fmt.Errorf("support class %q: %w", supportClass, ErrUnknownClass)
	}
	insertH, ok := g.cfg.ObjectHeights[insertClass]
	if !ok {
		return 0, fmt.Errorf("insert class %q: %w", insertClass, ErrUnknownClass)
	}
	return supportH/2 + insertH/2 + g.cfg.Insertion.ObjectGap, nil
}

// InsertPoses generates candidate poses for inserting an object objHeight
// above the support object's pose. When alignWithSupport is false a yaw sweep
// of candidate orientations is emitted, for use when an aligned insertion is
// not required or has failed. When true, two poses are emitted: one matching
// the support orientation and one flipped half a turn in yaw.
func (g *Generator) InsertPoses(
	objectClass string,
	supportPose spatialmath.Pose,
	objHeight float64,
	frame string,
	alignWithSupport bool,
) *PlacementList {
	p := supportPose.Point()
	center := r3.Vector{X: p.X, Y: p.Y, Z: p.Z + objHeight}
	orient := g.classOrientation(objectClass)

	list := &PlacementList{Frame: frame}

	if !alignWithSupport {
		yawStep := orient.YawStep
		if yawStep == 0 {
			yawStep = g.cfg.Insertion.SweepYawStep
		}
		yaw := 0.0
		for i := 0; i < g.cfg.Insertion.SweepSteps; i++ {
			list.Placements = append(list.Placements, ObjectPlacement{
				ClassID:    objectClass,
				InstanceID: i + 1,
				Pose:       eulerPose(center, orient.InsertRoll, 0, yaw),
			})
			yaw += yawStep
		}
		return list
	}

	eu := supportPose.Orientation().EulerAngles()
	roll := eu.Roll
	alignedOrient := supportPose.Orientation()
	if orient.AlignedRoll != 0 {
		roll = orient.AlignedRoll
		alignedOrient = &spatialmath.EulerAngles{Roll: roll, Pitch: eu.Pitch, Yaw: eu.Yaw}
	}

	list.Placements = append(list.Placements,
		ObjectPlacement{
			ClassID:    objectClass,
			InstanceID: 1,
			Pose:       spatialmath.NewPose(center, alignedOrient),
		},
		ObjectPlacement{
			ClassID:    objectClass,
			InstanceID: 2,
			Pose:       eulerPose(center, roll, eu.Pitch, eu.Yaw+math.Pi),
		},
	)
	return list
}
