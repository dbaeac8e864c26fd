package supportplane

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// PlacePoses randomly samples numPoses placement poses for an object class
// within a plane, keeping samples at least minDist apart in XY. A minDist of
// zero or less falls back to the configured default separation. The placed
// object is the one currently attached to the gripper; its resting height
// comes from the support object's top surface. When the support object is in
// ignoreMinDist the separation constraint is skipped. Above the configured
// dense pose count the separation is relaxed, and above the sweep pose count
// every sample is emitted as a yaw sweep instead of a single random yaw.
func (g *Generator) PlacePoses(
	objectClass, supportObject string,
	plane Plane,
	scene *Scene,
	numPoses int,
	minDist float64,
	ignoreMinDist []string,
) (*PlacementList, error) {
	cfg := g.cfg.Placement
	if minDist <= 0 {
		minDist = cfg.MinDist
	}
	if numPoses > cfg.DensePoseCount {
		g.logger.Warnf("number of poses is greater than %d, using min dist %.2f instead of the requested %.2f",
			cfg.DensePoseCount, cfg.RelaxedMinDist, minDist)
		minDist = cfg.RelaxedMinDist
	}

	z, err := scene.PlacementHeight(supportObject, cfg.SurfaceClearance)
	if err != nil {
		return nil, fmt.Errorf("placement height: %w", err)
	}

	ignore := false
	for _, name := range ignoreMinDist {
		if name == supportObject {
			ignore = true
			break
		}
	}

	roll := g.classOrientation(objectClass).PlaceRoll
	sweep := numPoses > cfg.SweepPoseCount
	if sweep {
		g.logger.Infof("covering 360 degrees for each of the %d samples", numPoses)
	}

	list := &PlacementList{Frame: scene.Frame()}
	var accepted []r3.Vector
	id := 1
	for i := 0; i < numPoses; i++ {
		x, y := g.samplePoint(plane, accepted, minDist, ignore, objectClass)
		accepted = append(accepted, r3.Vector{X: x, Y: y})

		if sweep {
			yaw := 0.0
			for s := 0; s < cfg.SweepSteps; s++ {
				list.Placements = append(list.Placements, ObjectPlacement{
					ClassID:    objectClass,
					InstanceID: id,
					Pose:       eulerPose(r3.Vector{X: x, Y: y, Z: z}, roll, 0, yaw),
				})
				id++
				yaw += cfg.SweepYawStep
			}
			continue
		}

		yaw := round4(g.uniform(0, math.Pi))
		list.Placements = append(list.Placements, ObjectPlacement{
			ClassID:    objectClass,
			InstanceID: id,
			Pose:       eulerPose(r3.Vector{X: x, Y: y, Z: z}, roll, 0, yaw),
		})
		id++
	}
	return list, nil
}

// samplePoint rejection-samples an XY point within the plane until it is well
// separated from the accepted points or the attempt cap is reached. The last
// candidate is returned either way.
func (g *Generator) samplePoint(plane Plane, accepted []r3.Vector, minDist float64, ignore bool, objectClass string) (float64, float64) {
	var x, y float64
	for attempts := 0; ; attempts++ {
		x = round4(g.uniform(plane[0].X, plane[1].X))
		y = round4(g.uniform(plane[0].Y, plane[3].Y))
		if ignore {
			g.logger.Warnf("ignoring min separation for object %s", objectClass)
			break
		}
		if wellSeparated(accepted, x, y, minDist) {
			break
		}
		if attempts >= g.cfg.Placement.MaxSampleAttempts {
			g.logger.Warnf("could not keep placement poses %.3f apart after %d attempts", minDist, attempts)
			break
		}
	}
	return x, y
}

// wellSeparated reports whether the candidate point is more than minDist away
// from every accepted point.
func wellSeparated(accepted []r3.Vector, x, y, minDist float64) bool {
	for _, p := range accepted {
		if math.Hypot(x-p.X, y-p.Y) <= minDist {
			return false
		}
	}
	return true
}
