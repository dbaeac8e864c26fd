package grasplan

import (
	"math"

	"github.com/golang/geo/r3"
	rutils "go.viam.com/rdk/utils"
	"gonum.org/v1/gonum/num/quat"
)

// Transform holds the editor's pose entry fields: a translation plus the
// same orientation as both roll/pitch/yaw and a quaternion. RPY values are
// read in degrees or radians according to Degrees.
type Transform struct {
	Linear  r3.Vector
	RPY     [3]float64
	Quat    quat.Number
	Degrees bool
}

// SetTransform replaces the editor's transform fields.
func (e *Editor) SetTransform(t Transform) {
	e.transform = t
}

// Transform returns the editor's current transform fields.
func (e *Editor) Transform() Transform {
	return e.transform
}

// resolveTransform returns the transform's translation, rpy in radians, and
// quaternion. With applyRPY the quaternion is recomputed from the rpy
// fields, which then take precedence, and the rounded result is written back
// to the quaternion fields.
func (e *Editor) resolveTransform(applyRPY bool) (r3.Vector, [3]float64, quat.Number) {
	rpy := e.transform.RPY
	if e.transform.Degrees {
		for i := range rpy {
			rpy[i] = rutils.DegToRad(rpy[i])
		}
	} else if rpy[0] > math.Pi || rpy[1] > math.Pi || rpy[2] > math.Pi {
		e.logger.Warn("radians are selected but a value is greater than pi, is this correct?")
	}
	// Hand-entered quaternions are not trusted to be unit length.
	q := normalizeQuat(e.transform.Quat)
	if applyRPY {
		q = quatFromRPY(rpy[0], rpy[1], rpy[2])
		e.transform.Quat = quat.Number{
			Real: roundTo(q.Real, 4),
			Imag: roundTo(q.Imag, 4),
			Jmag: roundTo(q.Jmag, 4),
			Kmag: roundTo(q.Kmag, 4),
		}
	}
	return e.transform.Linear, rpy, q
}

// SyncRPYToQuaternion recomputes the quaternion fields from the rpy fields
// and shows the orientation on the test pose channel.
func (e *Editor) SyncRPYToQuaternion() Transform {
	_, _, q := e.resolveTransform(true)
	e.publishTestPose(q)
	return e.transform
}

// SyncQuaternionToRPY recomputes the rpy fields from the quaternion fields
// and shows the orientation on the test pose channel.
func (e *Editor) SyncQuaternionToRPY() Transform {
	_, _, q := e.resolveTransform(false)
	rpy := rpyFromQuat(q)
	if e.transform.Degrees {
		for i := range rpy {
			rpy[i] = rutils.RadToDeg(rpy[i])
		}
	}
	for i := range rpy {
		rpy[i] = displayRound(rpy[i], 2)
	}
	e.transform.RPY = rpy
	e.publishTestPose(q)
	return e.transform
}

// ApplyTransform applies the transform fields to the grasp list. A single
// selected grasp is replaced by the transform pose outright; with all grasps
// or none selected, every grasp is rotated in place by the transform
// orientation.
func (e *Editor) ApplyTransform() {
	linear, rpy, q := e.resolveTransform(true)
	if i, ok := e.selection.Index(); ok {
		e.grasps[i] = poseFromQuat(linear, q)
	} else {
		for j, g := range e.grasps {
			gq := g.Orientation().Quaternion()
			e.grasps[j] = poseFromQuat(g.Point(), e.rotateQuaternion(gq, rpy[0], rpy[1], rpy[2]))
		}
	}
	e.publish()
}

// CreateGrasp appends a new grasp built from the transform fields and
// selects it.
func (e *Editor) CreateGrasp() {
	linear, _, q := e.resolveTransform(true)
	e.grasps = append(e.grasps, poseFromQuat(linear, q))
	e.selection = SelectIndex(len(e.grasps) - 1)
	e.publish()
	e.logger.Infof("%d grasps", len(e.grasps))
}

// rotateQuaternion applies a roll/pitch/yaw rotation to q by composing the
// corresponding quaternion on the left.
func (e *Editor) rotateQuaternion(q quat.Number, roll, pitch, yaw float64) quat.Number {
	if roll > math.Pi || pitch > math.Pi || yaw > math.Pi {
		e.logger.Warn("one or more rpy values are above pi, is this correct?")
	}
	return quat.Mul(quatFromRPY(roll, pitch, yaw), q)
}
