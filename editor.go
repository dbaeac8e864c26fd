package grasplan

import (
	"fmt"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
	rutils "go.viam.com/rdk/utils"
	"gonum.org/v1/gonum/num/quat"
)

// Editor maintains the grasp pose list for one object class, mutating it
// through selections, patterns, and transforms, and republishing the list to
// the visualizer after every change. Grasp poses are relative to the object
// frame. An Editor is driven by a single goroutine.
type Editor struct {
	logger logging.Logger
	viz    Visualizer

	objectName string
	yamlPath   string

	grasps    []spatialmath.Pose
	selection Selection
	transform Transform
}

// NewEditor creates an editor for the grasps of objectName stored at
// yamlPath. A nil visualizer edits without publishing.
func NewEditor(objectName, yamlPath string, viz Visualizer, logger logging.Logger) *Editor {
	return &Editor{
		logger:     logger,
		viz:        viz,
		objectName: objectName,
		yamlPath:   yamlPath,
	}
}

// ObjectName returns the name of the object being edited.
func (e *Editor) ObjectName() string { return e.objectName }

// GraspCount returns the number of grasps currently loaded.
func (e *Editor) GraspCount() int { return len(e.grasps) }

// Grasps returns a copy of the current grasp poses.
func (e *Editor) Grasps() []spatialmath.Pose {
	return append([]spatialmath.Pose(nil), e.grasps...)
}

// Selection returns the current grasp selection.
func (e *Editor) Selection() Selection { return e.selection }

// SetGrasps replaces the grasp list, clearing the selection.
func (e *Editor) SetGrasps(grasps []spatialmath.Pose) {
	e.grasps = append([]spatialmath.Pose(nil), grasps...)
	e.selection = SelectNone()
	e.publish()
}

// Select sets the highlighted grasp and republishes. With loadTransform true
// a single selected grasp is also copied into the transform fields.
func (e *Editor) Select(sel Selection, loadTransform bool) error {
	if i, ok := sel.Index(); ok {
		if i < 0 || i >= len(e.grasps) {
			return fmt.Errorf("cannot select grasp %d of %d: %w", i, len(e.grasps), ErrIndexOutOfBounds)
		}
	}
	e.selection = sel
	e.publish()
	if loadTransform {
		if i, ok := sel.Index(); ok {
			e.loadPoseIntoTransform(e.grasps[i])
		}
	}
	return nil
}

// Unselect clears the grasp selection and republishes.
func (e *Editor) Unselect() {
	e.selection = SelectNone()
	e.publish()
}

// Delete removes the selected grasp, or with an all selection clears the
// list. Deleting all grasps keeps grasp #0 the first time unless it is the
// only grasp left; delete again to remove it.
func (e *Editor) Delete() error {
	switch {
	case e.selection.IsAll():
		if len(e.grasps) <= 1 {
			e.logger.Info("deleting all grasps")
			e.grasps = nil
		} else {
			e.logger.Warn("deleting all grasps but leaving grasp #0, delete again to remove it")
			e.grasps = []spatialmath.Pose{e.grasps[0]}
		}
	default:
		i, ok := e.selection.Index()
		if !ok {
			return ErrNoSelection
		}
		e.grasps = append(e.grasps[:i], e.grasps[i+1:]...)
	}
	e.selection = SelectNone()
	e.publish()
	e.logger.Infof("%d grasps", len(e.grasps))
	return nil
}

// selectedIndices expands the selection into grasp indices.
func (e *Editor) selectedIndices() ([]int, error) {
	if e.selection.IsAll() {
		idx := make([]int, len(e.grasps))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	i, ok := e.selection.Index()
	if !ok {
		return nil, ErrNoSelection
	}
	if i >= len(e.grasps) {
		return nil, ErrIndexOutOfBounds
	}
	return []int{i}, nil
}

// loadPoseIntoTransform copies a grasp into the transform fields, rounding
// the values for display.
func (e *Editor) loadPoseIntoTransform(p spatialmath.Pose) {
	pt := p.Point()
	q := p.Orientation().Quaternion()
	e.transform.Linear = r3.Vector{
		X: displayRound(pt.X, 2),
		Y: displayRound(pt.Y, 2),
		Z: displayRound(pt.Z, 2),
	}
	e.transform.Quat = quat.Number{
		Real: roundTo(q.Real, 4),
		Imag: roundTo(q.Imag, 4),
		Jmag: roundTo(q.Jmag, 4),
		Kmag: roundTo(q.Kmag, 4),
	}
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
}

// PublishGrasps republishes the current grasp list and highlight without
// mutating anything.
func (e *Editor) PublishGrasps() {
	e.publish()
}

// publish sends the grasp list and highlight to the visualizer.
func (e *Editor) publish() {
	if e.viz == nil {
		return
	}
	if err := e.viz.PublishGrasps(e.Grasps(), e.selection); err != nil {
		e.logger.Warnf("publish grasps: %v", err)
	}
}

// publishTestPose shows an orientation at the origin on the test pose channel.
func (e *Editor) publishTestPose(q quat.Number) {
	if e.viz == nil {
		return
	}
	if err := e.viz.PublishTestPose(poseFromQuat(r3.Vector{}, q)); err != nil {
		e.logger.Warnf("publish test pose: %v", err)
	}
}

// publishObjectMesh tells the visualizer to switch object models.
func (e *Editor) publishObjectMesh() {
	if e.viz == nil {
		return
	}
	if err := e.viz.PublishObjectMesh(e.objectName); err != nil {
		e.logger.Warnf("publish object mesh: %v", err)
	}
}
