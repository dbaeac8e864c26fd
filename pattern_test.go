package grasplan

import (
	"errors"
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// qDot is the quaternion inner product; |qDot| near 1 means the same
// rotation, up to sign.
func qDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func assertSameRotation(t *testing.T, got, want quat.Number) {
	t.Helper()
	test.That(t, math.Abs(qDot(got, want)), test.ShouldBeGreaterThan, 1-1e-9)
}

func TestParseAxes(t *testing.T) {
	axes, err := ParseAxes("yz")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, axes, test.ShouldResemble, Axes{Y: true, Z: true})

	axes, err = ParseAxes("XZ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, axes, test.ShouldResemble, Axes{X: true, Z: true})

	axes, err = ParseAxes("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, axes, test.ShouldResemble, Axes{})

	_, err = ParseAxes("xq")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMirror_Append(t *testing.T) {
	e, viz := newTestEditor(t, 2)

	test.That(t, e.Select(SelectAll(), false), test.ShouldBeNil)
	test.That(t, e.Mirror(Axes{Z: true}, false), test.ShouldBeNil)
	test.That(t, e.GraspCount(), test.ShouldEqual, 4)
	test.That(t, viz.graspCalls, test.ShouldEqual, 3) // SetGrasps, Select, Mirror

	grasps := e.Grasps()
	// Originals keep their pose, mirrored copies keep the position but turn
	// half a turn in yaw.
	flipped := quatFromRPY(0, 0, math.Pi)
	for i := 0; i < 2; i++ {
		assertSameRotation(t, grasps[i].Orientation().Quaternion(), quat.Number{Real: 1})
		mirrored := grasps[i+2]
		test.That(t, mirrored.Point().X, test.ShouldAlmostEqual, grasps[i].Point().X)
		assertSameRotation(t, mirrored.Orientation().Quaternion(), flipped)
	}
}

func TestMirror_Replace(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	test.That(t, e.Select(SelectAll(), false), test.ShouldBeNil)
	test.That(t, e.Mirror(Axes{X: true}, true), test.ShouldBeNil)
	test.That(t, e.GraspCount(), test.ShouldEqual, 2)

	grasps := e.Grasps()
	rolled := quatFromRPY(math.Pi, 0, 0)
	test.That(t, grasps[0].Point().X, test.ShouldAlmostEqual, 0)
	test.That(t, grasps[1].Point().X, test.ShouldAlmostEqual, 0.1)
	for _, g := range grasps {
		assertSameRotation(t, g.Orientation().Quaternion(), rolled)
	}
}

func TestMirror_SingleSelection(t *testing.T) {
	e, _ := newTestEditor(t, 3)

	test.That(t, e.Select(SelectIndex(1), false), test.ShouldBeNil)
	test.That(t, e.Mirror(Axes{Y: true}, false), test.ShouldBeNil)
	test.That(t, e.GraspCount(), test.ShouldEqual, 4)

	mirrored := e.Grasps()[3]
	test.That(t, mirrored.Point().X, test.ShouldAlmostEqual, 0.1)
	assertSameRotation(t, mirrored.Orientation().Quaternion(), quatFromRPY(0, math.Pi, 0))
}

func TestMirror_TwiceRestoresOrientation(t *testing.T) {
	e, _ := newTestEditor(t, 1)

	test.That(t, e.Select(SelectIndex(0), false), test.ShouldBeNil)
	test.That(t, e.Mirror(Axes{Y: true}, true), test.ShouldBeNil)
	test.That(t, e.Select(SelectIndex(0), false), test.ShouldBeNil)
	test.That(t, e.Mirror(Axes{Y: true}, true), test.ShouldBeNil)

	test.That(t, e.GraspCount(), test.ShouldEqual, 1)
	assertSameRotation(t, e.Grasps()[0].Orientation().Quaternion(), quat.Number{Real: 1})
}

func TestMirror_NoSelection(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	err := e.Mirror(Axes{Z: true}, false)
	test.That(t, errors.Is(err, ErrNoSelection), test.ShouldBeTrue)
	test.That(t, e.GraspCount(), test.ShouldEqual, 2)
}

func TestCircular(t *testing.T) {
	e, _ := newTestEditor(t, 1)

	test.That(t, e.Select(SelectIndex(0), false), test.ShouldBeNil)
	test.That(t, e.Circular(math.Pi/2, 4, Axes{Z: true}), test.ShouldBeNil)
	test.That(t, e.GraspCount(), test.ShouldEqual, 4)

	// Each derived grasp is the previous one turned a quarter further.
	grasps := e.Grasps()
	for i, g := range grasps {
		assertSameRotation(t, g.Orientation().Quaternion(), quatFromRPY(0, 0, float64(i)*math.Pi/2))
		test.That(t, g.Point().X, test.ShouldAlmostEqual, 0)
	}

	// The most recently added grasp ends up selected.
	i, ok := e.Selection().Index()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, i, test.ShouldEqual, 3)
}

func TestCircular_AllSelection(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	test.That(t, e.Select(SelectAll(), false), test.ShouldBeNil)
	test.That(t, e.Circular(0.5, 3, Axes{Z: true}), test.ShouldBeNil)
	// Two derived grasps per original.
	test.That(t, e.GraspCount(), test.ShouldEqual, 6)

	i, ok := e.Selection().Index()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, i, test.ShouldEqual, 5)
}

func TestCircular_CountOne(t *testing.T) {
	e, _ := newTestEditor(t, 1)

	test.That(t, e.Select(SelectIndex(0), false), test.ShouldBeNil)
	test.That(t, e.Circular(0.5, 1, Axes{Z: true}), test.ShouldBeNil)
	test.That(t, e.GraspCount(), test.ShouldEqual, 1)
}

func TestCircular_NegativeCount(t *testing.T) {
	e, _ := newTestEditor(t, 1)

	test.That(t, e.Select(SelectIndex(0), false), test.ShouldBeNil)
	err := e.Circular(0.5, -2, Axes{Z: true})
	test.That(t, errors.Is(err, ErrNegativeCount), test.ShouldBeTrue)
	test.That(t, e.GraspCount(), test.ShouldEqual, 1)
}

func TestCircular_NoSelection(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	err := e.Circular(0.5, 3, Axes{Z: true})
	test.That(t, errors.Is(err, ErrNoSelection), test.ShouldBeTrue)
	test.That(t, e.GraspCount(), test.ShouldEqual, 2)
}
