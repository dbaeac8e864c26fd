package grasplan

import (
	"fmt"
	"math"
	"strings"

	"go.viam.com/rdk/spatialmath"
)

// Axes selects which axes a pattern rotates about.
type Axes struct {
	X, Y, Z bool
}

// ParseAxes builds an Axes from a string naming the axes, such as "yz".
func ParseAxes(s string) (Axes, error) {
	var axes Axes
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'x':
			axes.X = true
		case 'y':
			axes.Y = true
		case 'z':
			axes.Z = true
		default:
			return Axes{}, fmt.Errorf("unknown axis %q, want x, y or z", string(r))
		}
	}
	return axes, nil
}

// rpy returns angle on each chosen axis and zero elsewhere.
func (a Axes) rpy(angle float64) (roll, pitch, yaw float64) {
	if a.X {
		roll = angle
	}
	if a.Y {
		pitch = angle
	}
	if a.Z {
		yaw = angle
	}
	return roll, pitch, yaw
}

// Mirror derives grasps from the selected grasps by rotating them half a
// turn about each chosen axis. With replace true the originals are removed,
// otherwise the derived grasps are appended alongside them.
func (e *Editor) Mirror(axes Axes, replace bool) error {
	targets, err := e.selectedIndices()
	if err != nil {
		return err
	}
	roll, pitch, yaw := axes.rpy(math.Pi)

	derived := make([]spatialmath.Pose, 0, len(targets))
	for _, i := range targets {
		g := e.grasps[i]
		q := g.Orientation().Quaternion()
		derived = append(derived, poseFromQuat(g.Point(), e.rotateQuaternion(q, roll, pitch, yaw)))
	}
	if replace {
		for n := len(targets) - 1; n >= 0; n-- {
			i := targets[n]
			e.grasps = append(e.grasps[:i], e.grasps[i+1:]...)
		}
	}
	e.grasps = append(e.grasps, derived...)
	e.publish()
	e.logger.Infof("%d grasps", len(e.grasps))
	return nil
}

// Circular derives a circular pattern from each selected grasp: count-1
// copies, each rotated by step radians about the chosen axes relative to the
// previous copy. The most recently added grasp becomes the selection.
func (e *Editor) Circular(step float64, count int, axes Axes) error {
	if step > math.Pi {
		e.logger.Warn("step angle is greater than pi radians, is this correct?")
	}
	if count < 0 {
		return ErrNegativeCount
	}
	targets, err := e.selectedIndices()
	if err != nil {
		return err
	}
	roll, pitch, yaw := axes.rpy(step)

	for _, i := range targets {
		prev := e.grasps[i]
		for n := 0; n < count-1; n++ {
			q := prev.Orientation().Quaternion()
			next := poseFromQuat(prev.Point(), e.rotateQuaternion(q, roll, pitch, yaw))
			e.grasps = append(e.grasps, next)
			e.selection = SelectIndex(len(e.grasps) - 1)
			prev = next
		}
	}
	e.publish()
	e.logger.Infof("%d grasps", len(e.grasps))
	return nil
}
