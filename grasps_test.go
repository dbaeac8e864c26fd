package grasplan

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grasps.yaml")
	poses := []spatialmath.Pose{
		poseFromQuat(r3.Vector{X: 0.1, Y: -0.2, Z: 0.3}, quatFromRPY(0, 0, math.Pi/2)),
		poseFromQuat(r3.Vector{X: -0.4, Y: 0.5, Z: 0.6}, quat.Number{Real: 1}),
	}

	test.That(t, SaveGraspsFile(path, "relay", poses), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	text := string(data)
	test.That(t, strings.Contains(text, "# this file was generated automatically by grasplan grasp editor"),
		test.ShouldBeTrue)
	test.That(t, strings.Contains(text, "relay:"), test.ShouldBeTrue)
	test.That(t, strings.Contains(text, "grasp_poses:"), test.ShouldBeTrue)
	test.That(t, strings.Contains(text, "[0.100000, -0.200000, 0.300000]"), test.ShouldBeTrue)

	loaded, err := LoadGraspsFile(path, "relay")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(loaded), test.ShouldEqual, 2)
	for i := range poses {
		// The file keeps six decimals.
		diff := loaded[i].Point().Sub(poses[i].Point()).Norm()
		test.That(t, diff, test.ShouldBeLessThan, 1e-6)
		dot := qDot(loaded[i].Orientation().Quaternion(), poses[i].Orientation().Quaternion())
		test.That(t, math.Abs(dot), test.ShouldBeGreaterThan, 1-1e-6)
	}
}

func TestLoadGraspsFile_StripsInstanceSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grasps.yaml")
	test.That(t, SaveGraspsFile(path, "relay", testGrasps(1)), test.ShouldBeNil)

	loaded, err := LoadGraspsFile(path, "relay_2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(loaded), test.ShouldEqual, 1)
}

func TestLoadGraspsFile_MissingObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grasps.yaml")
	test.That(t, SaveGraspsFile(path, "relay", testGrasps(1)), test.ShouldBeNil)

	_, err := LoadGraspsFile(path, "screwdriver")
	test.That(t, errors.Is(err, ErrObjectNotInFile), test.ShouldBeTrue)
}

func TestLoadGraspsFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		text string
	}{
		{"short translation", "relay:\n  grasp_poses:\n    - translation: [0.1, 0.2]\n      rotation: [0, 0, 0, 1]\n"},
		{"short rotation", "relay:\n  grasp_poses:\n    - translation: [0.1, 0.2, 0.3]\n      rotation: [0, 0, 1]\n"},
		{"not yaml", "relay: [\n"},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
		test.That(t, os.WriteFile(path, []byte(tc.text), 0o644), test.ShouldBeNil)
		_, err := LoadGraspsFile(path, "relay")
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestLoadGraspsFile_NormalizesRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grasps.yaml")
	text := "relay:\n  grasp_poses:\n    - translation: [0, 0, 0]\n      rotation: [0, 0, 0, 2]\n"
	test.That(t, os.WriteFile(path, []byte(text), 0o644), test.ShouldBeNil)

	loaded, err := LoadGraspsFile(path, "relay")
	test.That(t, err, test.ShouldBeNil)
	q := loaded[0].Orientation().Quaternion()
	test.That(t, q.Real, test.ShouldAlmostEqual, 1)
}

func TestObjectClass(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"relay_1", "relay"},
		{"klt_23", "klt"},
		{"power_drill_with_grip", "power_drill_with_grip"},
		{"relay", "relay"},
		{"box_", "box_"},
		{"a_1b", "a_1b"},
	} {
		test.That(t, ObjectClass(tc.in), test.ShouldEqual, tc.want)
	}
}

func TestEditorSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grasps.yaml")
	e, _ := newEditorAt(t, path)
	e.SetGrasps(testGrasps(3))
	test.That(t, e.SaveGrasps(), test.ShouldBeNil)

	e2, viz2 := newEditorAt(t, path)
	test.That(t, e2.LoadGrasps(), test.ShouldBeNil)
	test.That(t, e2.GraspCount(), test.ShouldEqual, 3)
	test.That(t, viz2.meshCalls, test.ShouldEqual, 1)
	test.That(t, viz2.lastMesh, test.ShouldEqual, "relay_1")
	test.That(t, len(viz2.lastGrasps), test.ShouldEqual, 3)
}

func TestEditorLoadGrasps_KeepsStateOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	e, _ := newEditorAt(t, path)
	e.SetGrasps(testGrasps(2))

	test.That(t, e.LoadGrasps(), test.ShouldNotBeNil)
	test.That(t, e.GraspCount(), test.ShouldEqual, 2)
}

func TestGraspsYAML(t *testing.T) {
	e, _ := newTestEditor(t, 2)

	text, err := e.GraspsYAML()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.HasPrefix(text, "# this file was generated automatically by grasplan grasp editor"),
		test.ShouldBeTrue)
	test.That(t, strings.Count(text, "translation:"), test.ShouldEqual, 2)
}

func newEditorAt(t *testing.T, path string) (*Editor, *fakeViz) {
	t.Helper()
	viz := &fakeViz{}
	return NewEditor("relay_1", path, viz, logging.NewTestLogger(t)), viz
}
