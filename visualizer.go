package grasplan

import (
	viz "github.com/viam-labs/motion-tools/client/client"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

// Visualizer receives the editor's working state after every change.
type Visualizer interface {
	// PublishGrasps replaces the displayed grasps, marking the selection.
	PublishGrasps(grasps []spatialmath.Pose, sel Selection) error
	// PublishObjectMesh shows the object the grasps belong to.
	PublishObjectMesh(name string) error
	// PublishTestPose previews a single pose without touching the grasps.
	PublishTestPose(pose spatialmath.Pose) error
}

// MotionToolsVisualizer draws the editor state in the motion-tools viewer.
type MotionToolsVisualizer struct {
	logger logging.Logger

	// GraspColor and HighlightColor are the arrow colors for unselected
	// and selected grasps.
	GraspColor     string
	HighlightColor string
	TestPoseColor  string
}

// NewMotionToolsVisualizer returns a visualizer with the default colors.
func NewMotionToolsVisualizer(logger logging.Logger) *MotionToolsVisualizer {
	return &MotionToolsVisualizer{
		logger:         logger,
		GraspColor:     "red",
		HighlightColor: "green",
		TestPoseColor:  "blue",
	}
}

// PublishGrasps clears the viewer and redraws every grasp as an arrow,
// selected grasps in the highlight color.
func (m *MotionToolsVisualizer) PublishGrasps(grasps []spatialmath.Pose, sel Selection) error {
	if err := viz.RemoveAllSpatialObjects(); err != nil {
		return err
	}
	if len(grasps) == 0 {
		return nil
	}
	colors := make([]string, len(grasps))
	selected, hasIndex := sel.Index()
	for i := range grasps {
		switch {
		case sel.IsAll():
			colors[i] = m.HighlightColor
		case hasIndex && i == selected:
			colors[i] = m.HighlightColor
		default:
			colors[i] = m.GraspColor
		}
	}
	return viz.DrawPoses(grasps, colors, true)
}

// PublishObjectMesh logs the object name. The motion-tools viewer draws
// poses and geometries, not meshes.
func (m *MotionToolsVisualizer) PublishObjectMesh(name string) error {
	m.logger.Infof("editing grasps for object %q", name)
	return nil
}

// PublishTestPose draws a single preview arrow next to the grasps.
func (m *MotionToolsVisualizer) PublishTestPose(pose spatialmath.Pose) error {
	return viz.DrawPoses([]spatialmath.Pose{pose}, []string{m.TestPoseColor}, true)
}
