package grasplan

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestSyncRPYToQuaternion(t *testing.T) {
	e, viz := newTestEditor(t, 0)

	e.SetTransform(Transform{RPY: [3]float64{math.Pi / 2, 0, 0}})
	tr := e.SyncRPYToQuaternion()

	// Quaternion fields are rounded to 4 decimals for display.
	test.That(t, tr.Quat, test.ShouldResemble, quat.Number{Real: 0.7071, Imag: 0.7071})
	test.That(t, len(viz.testPoses), test.ShouldEqual, 1)
}

func TestSyncRPYToQuaternion_Degrees(t *testing.T) {
	e, _ := newTestEditor(t, 0)

	e.SetTransform(Transform{RPY: [3]float64{90, 0, 0}, Degrees: true})
	tr := e.SyncRPYToQuaternion()
	test.That(t, tr.Quat, test.ShouldResemble, quat.Number{Real: 0.7071, Imag: 0.7071})
}

func TestSyncQuaternionToRPY(t *testing.T) {
	e, viz := newTestEditor(t, 0)

	e.SetTransform(Transform{Quat: quatFromRPY(0.5, 0.25, 1)})
	tr := e.SyncQuaternionToRPY()
	test.That(t, tr.RPY, test.ShouldResemble, [3]float64{0.5, 0.25, 1})
	test.That(t, len(viz.testPoses), test.ShouldEqual, 1)
}

func TestSyncQuaternionToRPY_NormalizesInput(t *testing.T) {
	e, viz := newTestEditor(t, 0)

	// A hand-entered quaternion at twice unit length still reads as a
	// quarter-turn roll.
	e.SetTransform(Transform{Quat: quat.Number{Real: 2, Imag: 2}})
	tr := e.SyncQuaternionToRPY()
	test.That(t, tr.RPY, test.ShouldResemble, [3]float64{1.57, 0, 0})

	q := viz.testPoses[0].Orientation().Quaternion()
	norm := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	test.That(t, norm, test.ShouldAlmostEqual, 1)
}

func TestSyncQuaternionToRPY_Degrees(t *testing.T) {
	e, _ := newTestEditor(t, 0)

	e.SetTransform(Transform{Quat: quatFromRPY(math.Pi/2, 0, 0), Degrees: true})
	tr := e.SyncQuaternionToRPY()
	test.That(t, tr.RPY, test.ShouldResemble, [3]float64{90, 0, 0})
}

func TestApplyTransform_RotatesAll(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	// With nothing selected the transform rotates every grasp in place.
	e.SetTransform(Transform{Linear: r3.Vector{X: 9}, RPY: [3]float64{0, 0, math.Pi / 2}})
	e.ApplyTransform()

	turned := quatFromRPY(0, 0, math.Pi/2)
	for i, g := range e.Grasps() {
		test.That(t, g.Point().X, test.ShouldAlmostEqual, float64(i)*0.1)
		assertSameRotation(t, g.Orientation().Quaternion(), turned)
	}
}

func TestApplyTransform_AllSelected(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	test.That(t, e.Select(SelectAll(), false), test.ShouldBeNil)
	e.SetTransform(Transform{RPY: [3]float64{math.Pi, 0, 0}})
	e.ApplyTransform()

	rolled := quatFromRPY(math.Pi, 0, 0)
	for _, g := range e.Grasps() {
		assertSameRotation(t, g.Orientation().Quaternion(), rolled)
	}
}

func TestApplyTransform_SingleReplacesPose(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	test.That(t, e.Select(SelectIndex(1), false), test.ShouldBeNil)
	e.SetTransform(Transform{
		Linear: r3.Vector{X: 0.5, Y: 0.6, Z: 0.7},
		RPY:    [3]float64{0, 0, math.Pi / 2},
	})
	e.ApplyTransform()

	grasps := e.Grasps()
	// Grasp 0 is untouched, grasp 1 becomes the transform pose.
	test.That(t, grasps[0].Point().X, test.ShouldAlmostEqual, 0)
	assertSameRotation(t, grasps[0].Orientation().Quaternion(), quat.Number{Real: 1})
	test.That(t, grasps[1].Point(), test.ShouldResemble, r3.Vector{X: 0.5, Y: 0.6, Z: 0.7})
	assertSameRotation(t, grasps[1].Orientation().Quaternion(), quatFromRPY(0, 0, math.Pi/2))
}

func TestApplyTransform_Degrees(t *testing.T) {
	e, _ := newTestEditor(t, 1)

	e.SetTransform(Transform{RPY: [3]float64{0, 0, 90}, Degrees: true})
	e.ApplyTransform()

	assertSameRotation(t, e.Grasps()[0].Orientation().Quaternion(), quatFromRPY(0, 0, math.Pi/2))
}

func TestCreateGrasp(t *testing.T) {
	e, viz := newTestEditor(t, 0)

	e.SetTransform(Transform{Linear: r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}})
	e.CreateGrasp()

	test.That(t, e.GraspCount(), test.ShouldEqual, 1)
	g := e.Grasps()[0]
	test.That(t, g.Point(), test.ShouldResemble, r3.Vector{X: 0.1, Y: 0.2, Z: 0.3})
	assertSameRotation(t, g.Orientation().Quaternion(), quat.Number{Real: 1})

	// The new grasp is selected and highlighted.
	i, ok := e.Selection().Index()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, i, test.ShouldEqual, 0)
	test.That(t, viz.lastSel.HighlightIndex(), test.ShouldEqual, 0)
}
