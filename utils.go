package grasplan

import (
	"math"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gonum.org/v1/gonum/num/quat"
)

// poseFromQuat builds a pose from a position and a quaternion.
func poseFromQuat(pt r3.Vector, q quat.Number) spatialmath.Pose {
	sq := spatialmath.Quaternion(q)
	return spatialmath.NewPose(pt, &sq)
}

// quatFromRPY converts roll/pitch/yaw radians to a quaternion.
func quatFromRPY(roll, pitch, yaw float64) quat.Number {
	return (&spatialmath.EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}).Quaternion()
}

// rpyFromQuat converts a quaternion to roll/pitch/yaw radians.
func rpyFromQuat(q quat.Number) [3]float64 {
	sq := spatialmath.Quaternion(q)
	eu := sq.EulerAngles()
	return [3]float64{eu.Roll, eu.Pitch, eu.Yaw}
}

// normalizeQuat scales q to unit length. A zero quaternion becomes identity.
func normalizeQuat(q quat.Number) quat.Number {
	a := quat.Abs(q)
	if a == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/a, q)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// displayRound rounds a value for the transform fields, normalizing negative
// zero so the fields never show -0.0.
func displayRound(v float64, places int) float64 {
	r := roundTo(v, places)
	if r == 0 {
		return 0
	}
	return r
}
