package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/joho/godotenv"
	viz "github.com/viam-labs/motion-tools/client/client"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
	rutils "go.viam.com/rdk/utils"
	"go.viam.com/utils"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/mintar/grasplan"
	"github.com/mintar/grasplan/internal/params"
	"github.com/mintar/grasplan/supportplane"
)

var steps = map[string]func(context.Context, *app) error{
	"print":    runPrint,
	"mirror":   runMirror,
	"circular": runCircular,
	"rotate":   runRotate,
	"place":    runPlace,
	"insert":   runInsert,
}

const validSteps = "print, mirror, circular, rotate, place, insert"

// app bundles everything a step needs: the grasp editor for the editing
// steps, the scene and generator for the pose-generation steps, and the
// parsed flags.
type app struct {
	logger logging.Logger
	editor *grasplan.Editor
	gen    *supportplane.Generator
	scene  *supportplane.Scene

	requestPath string
	overrides   map[string]string
	outPath     string
	showViz     bool
	clearance   float64

	axes             grasplan.Axes
	stepAngle        float64
	count            int
	degrees          bool
	replace          bool
	index            int
	roll, pitch, yaw float64
	tx, ty, tz       float64
}

type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	utils.ContextualMain(mainWithArgs, logging.NewLogger("grasplan-cli"))
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	// A .env file can hold GRASPLAN_GRASPS_FILE and GRASPLAN_SCENE_FILE to
	// avoid repeating the paths on every invocation.
	_ = godotenv.Load()

	step := flag.String("step", "", "step to run: "+validSteps)
	graspsPath := flag.String("grasps", os.Getenv("GRASPLAN_GRASPS_FILE"), "path to grasps YAML file")
	object := flag.String("object", "", "object whose grasps are edited")
	scenePath := flag.String("scene", os.Getenv("GRASPLAN_SCENE_FILE"), "path to scene YAML file")
	requestPath := flag.String("request", "", "path to request YAML for place/insert")
	outPath := flag.String("out", "", "write generated poses to this JSON file")
	showViz := flag.Bool("viz", false, "publish results to the motion-tools viewer")
	axesFlag := flag.String("axes", "", "pattern axes, any of x, y, z (e.g. \"yz\")")
	stepAngle := flag.Float64("step-angle", 0, "circular pattern step angle")
	count := flag.Int("count", 0, "circular pattern pose count")
	degrees := flag.Bool("degrees", false, "interpret angles as degrees instead of radians")
	replace := flag.Bool("replace", false, "mirror replaces the originals instead of appending")
	index := flag.Int("index", -1, "grasp index to operate on, -1 for all")
	roll := flag.Float64("roll", 0, "rotate step roll angle")
	pitch := flag.Float64("pitch", 0, "rotate step pitch angle")
	yaw := flag.Float64("yaw", 0, "rotate step yaw angle")
	tx := flag.Float64("tx", 0, "rotate step x translation, applied to a single grasp only")
	ty := flag.Float64("ty", 0, "rotate step y translation, applied to a single grasp only")
	tz := flag.Float64("tz", 0, "rotate step z translation, applied to a single grasp only")
	var setFlags stringSliceFlag
	flag.Var(&setFlags, "set", "request override key=value, repeatable")
	flag.Parse()

	if *step == "" {
		return errors.New("-step flag is required; valid steps: " + validSteps)
	}
	if _, ok := steps[*step]; !ok {
		return fmt.Errorf("unknown step %q; valid steps: %s", *step, validSteps)
	}
	axes, err := grasplan.ParseAxes(*axesFlag)
	if err != nil {
		return err
	}
	overrides, err := params.ParseOverrides(setFlags)
	if err != nil {
		return err
	}

	a := &app{
		logger:      logger,
		requestPath: *requestPath,
		overrides:   overrides,
		outPath:     *outPath,
		showViz:     *showViz,
		axes:        axes,
		stepAngle:   *stepAngle,
		count:       *count,
		degrees:     *degrees,
		replace:     *replace,
		index:       *index,
		roll:        *roll,
		pitch:       *pitch,
		yaw:         *yaw,
		tx:          *tx,
		ty:          *ty,
		tz:          *tz,
	}

	switch *step {
	case "place", "insert":
		if *scenePath == "" {
			return errors.New("-scene flag is required for " + *step)
		}
		scene, err := supportplane.LoadScene(*scenePath)
		if err != nil {
			return err
		}
		a.scene = scene
		cfg := supportplane.DefaultConfig()
		a.gen = supportplane.NewGenerator(&cfg, logger)
		a.clearance = cfg.Placement.SurfaceClearance
	default:
		if *graspsPath == "" || *object == "" {
			return errors.New("-grasps and -object flags are required for " + *step)
		}
		var v grasplan.Visualizer
		if *showViz {
			v = grasplan.NewMotionToolsVisualizer(logger)
		}
		a.editor = grasplan.NewEditor(*object, *graspsPath, v, logger)
		if err := a.editor.LoadGrasps(); err != nil {
			return err
		}
	}

	logger.Infof("=== Running step: %s ===", *step)
	if err := steps[*step](ctx, a); err != nil {
		return err
	}
	logger.Infof("Step %s completed successfully", *step)
	return nil
}

// selectTarget selects the grasp named by -index, or all grasps.
func (a *app) selectTarget() error {
	if a.index >= 0 {
		return a.editor.Select(grasplan.SelectIndex(a.index), false)
	}
	return a.editor.Select(grasplan.SelectAll(), false)
}

func runPrint(ctx context.Context, a *app) error {
	text, err := a.editor.GraspsYAML()
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

func runMirror(ctx context.Context, a *app) error {
	if err := a.selectTarget(); err != nil {
		return err
	}
	if err := a.editor.Mirror(a.axes, a.replace); err != nil {
		return fmt.Errorf("mirror: %w", err)
	}
	return a.editor.SaveGrasps()
}

func runCircular(ctx context.Context, a *app) error {
	if a.count == 0 {
		return errors.New("-count flag is required for circular")
	}
	if err := a.selectTarget(); err != nil {
		return err
	}
	step := a.stepAngle
	if a.degrees {
		step = rutils.DegToRad(step)
	}
	if err := a.editor.Circular(step, a.count, a.axes); err != nil {
		return fmt.Errorf("circular: %w", err)
	}
	return a.editor.SaveGrasps()
}

func runRotate(ctx context.Context, a *app) error {
	if err := a.selectTarget(); err != nil {
		return err
	}
	a.editor.SetTransform(grasplan.Transform{
		Linear:  r3.Vector{X: a.tx, Y: a.ty, Z: a.tz},
		RPY:     [3]float64{a.roll, a.pitch, a.yaw},
		Degrees: a.degrees,
	})
	a.editor.ApplyTransform()
	return a.editor.SaveGrasps()
}

func runPlace(ctx context.Context, a *app) error {
	req := params.DefaultPlaceRequest()
	if err := params.Load(a.requestPath, a.overrides, &req); err != nil {
		return err
	}
	plane, err := a.scene.TopPlane(req.SupportObject, a.clearance)
	if err != nil {
		return err
	}
	plane, err = plane.Adjust(req.XExtend, req.YExtend, req.XOffset, req.YOffset)
	if err != nil {
		return err
	}
	list, err := a.gen.PlacePoses(req.ObjectClass, req.SupportObject, plane, a.scene,
		req.NumPoses, req.MinDist, req.IgnoreMinDist)
	if err != nil {
		return err
	}
	a.logger.Infof("generated %d placement poses for %s on %s",
		len(list.Placements), req.ObjectClass, req.SupportObject)
	a.visualize(&plane, list)
	return a.writeOut(list)
}

func runInsert(ctx context.Context, a *app) error {
	req := params.DefaultInsertRequest()
	if err := params.Load(a.requestPath, a.overrides, &req); err != nil {
		return err
	}
	support, err := a.scene.Object(req.SupportObject)
	if err != nil {
		return err
	}
	height, err := a.gen.InsertionHeight(req.ObjectClass, grasplan.ObjectClass(support.Name))
	if err != nil {
		return err
	}
	list := a.gen.InsertPoses(req.ObjectClass, support.Pose, height, a.scene.Frame(), req.AlignWithSupport)
	a.logger.Infof("generated %d insertion poses for %s into %s",
		len(list.Placements), req.ObjectClass, req.SupportObject)
	a.visualize(nil, list)
	return a.writeOut(list)
}

// visualize draws the generated poses, and the sampling plane corners when
// a plane is given. Viewer errors only warn so a headless run still works.
func (a *app) visualize(plane *supportplane.Plane, list *supportplane.PlacementList) {
	if !a.showViz {
		return
	}
	if err := viz.RemoveAllSpatialObjects(); err != nil {
		a.logger.Warnf("clear viewer: %v", err)
		return
	}
	if plane != nil {
		corners := make([]spatialmath.Pose, 0, len(plane))
		for _, c := range plane {
			corners = append(corners, spatialmath.NewPoseFromPoint(c))
		}
		colors := []string{"yellow", "yellow", "yellow", "yellow"}
		if err := viz.DrawPoses(corners, colors, false); err != nil {
			a.logger.Warnf("draw plane corners: %v", err)
		}
	}
	poses := list.Poses()
	colors := make([]string, len(poses))
	for i := range colors {
		colors[i] = "green"
	}
	if err := viz.DrawPoses(poses, colors, true); err != nil {
		a.logger.Warnf("draw poses: %v", err)
	}
}

type poseExport struct {
	ClassID    string          `json:"class_id"`
	InstanceID int             `json:"instance_id"`
	Pose       json.RawMessage `json:"pose"`
}

type placementExport struct {
	Frame string       `json:"frame"`
	Poses []poseExport `json:"poses"`
}

// writeOut saves the placements to -out as JSON, with each pose in the
// protobuf JSON form used by the motion APIs. No-op without -out.
func (a *app) writeOut(list *supportplane.PlacementList) error {
	if a.outPath == "" {
		return nil
	}
	export := placementExport{Frame: list.Frame, Poses: make([]poseExport, 0, len(list.Placements))}
	for _, p := range list.Placements {
		raw, err := protojson.Marshal(spatialmath.PoseToProtobuf(p.Pose))
		if err != nil {
			return fmt.Errorf("marshal pose: %w", err)
		}
		export.Poses = append(export.Poses, poseExport{
			ClassID:    p.ClassID,
			InstanceID: p.InstanceID,
			Pose:       raw,
		})
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal placements: %w", err)
	}
	if err := os.WriteFile(a.outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing poses file: %w", err)
	}
	a.logger.Infof("Saved %d poses to %s", len(export.Poses), a.outPath)
	return nil
}
