package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	rutils "go.viam.com/rdk/utils"
	"gonum.org/v1/gonum/num/quat"

	"github.com/mintar/grasplan"
)

func main() {
	graspsPath := flag.String("grasps", "", "path to grasps YAML file")
	object := flag.String("object", "", "object whose grasps are edited")
	noViz := flag.Bool("no-viz", false, "do not publish to the motion-tools viewer")
	flag.Parse()

	logger := logging.NewDebugLogger("grasplan")

	if *graspsPath == "" {
		logger.Fatal("-grasps flag is required")
	}
	if *object == "" {
		logger.Fatal("-object flag is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var viz grasplan.Visualizer
	if !*noViz {
		viz = grasplan.NewMotionToolsVisualizer(logger)
	}
	editor := grasplan.NewEditor(*object, *graspsPath, viz, logger)
	if err := editor.LoadGrasps(); err != nil {
		logger.Warnf("%v, starting with an empty grasp list", err)
	}

	runSession(ctx, editor, logger)
}

func runSession(ctx context.Context, editor *grasplan.Editor, logger logging.Logger) {
	fmt.Println("grasplan grasp editor, type \"help\" for commands")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "quit" || fields[0] == "exit" {
				return
			}
			if err := runCommand(editor, fields[0], fields[1:]); err != nil {
				logger.Warn(err)
			}
		}
	}
}

func runCommand(editor *grasplan.Editor, cmd string, args []string) error {
	switch cmd {
	case "help":
		printHelp()
		return nil
	case "load":
		return editor.LoadGrasps()
	case "save":
		return editor.SaveGrasps()
	case "print":
		text, err := editor.GraspsYAML()
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	case "status":
		printStatus(editor)
		return nil
	case "select":
		return runSelect(editor, args)
	case "unselect":
		editor.Unselect()
		return nil
	case "delete":
		return editor.Delete()
	case "mirror":
		return runMirror(editor, args)
	case "circle":
		return runCircle(editor, args)
	case "move":
		return runMove(editor, args)
	case "rotate":
		return runRotate(editor, args)
	case "quat":
		return runQuat(editor, args)
	case "apply":
		editor.ApplyTransform()
		return nil
	case "create":
		editor.CreateGrasp()
		return nil
	case "units":
		return runUnits(editor, args)
	default:
		return fmt.Errorf("unknown command %q, type \"help\" for commands", cmd)
	}
}

func runSelect(editor *grasplan.Editor, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: select <index>|all|none")
	}
	switch args[0] {
	case "all":
		return editor.Select(grasplan.SelectAll(), false)
	case "none":
		editor.Unselect()
		return nil
	default:
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad index %q", args[0])
		}
		return editor.Select(grasplan.SelectIndex(i), true)
	}
}

func runMirror(editor *grasplan.Editor, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: mirror <axes> [replace]")
	}
	axes, err := grasplan.ParseAxes(args[0])
	if err != nil {
		return err
	}
	replace := len(args) > 1 && args[1] == "replace"
	return editor.Mirror(axes, replace)
}

func runCircle(editor *grasplan.Editor, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: circle <axes> <step> <count>")
	}
	axes, err := grasplan.ParseAxes(args[0])
	if err != nil {
		return err
	}
	step, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("bad step angle %q", args[1])
	}
	count, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("bad count %q", args[2])
	}
	if editor.Transform().Degrees {
		step = rutils.DegToRad(step)
	}
	return editor.Circular(step, count, axes)
}

func runMove(editor *grasplan.Editor, args []string) error {
	v, err := parseFloats(args, 3, "usage: move <x> <y> <z>")
	if err != nil {
		return err
	}
	t := editor.Transform()
	t.Linear = r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	editor.SetTransform(t)
	return nil
}

func runRotate(editor *grasplan.Editor, args []string) error {
	v, err := parseFloats(args, 3, "usage: rotate <roll> <pitch> <yaw>")
	if err != nil {
		return err
	}
	t := editor.Transform()
	t.RPY = [3]float64{v[0], v[1], v[2]}
	editor.SetTransform(t)
	editor.SyncRPYToQuaternion()
	return nil
}

func runQuat(editor *grasplan.Editor, args []string) error {
	v, err := parseFloats(args, 4, "usage: quat <x> <y> <z> <w>")
	if err != nil {
		return err
	}
	t := editor.Transform()
	t.Quat = quat.Number{Real: v[3], Imag: v[0], Jmag: v[1], Kmag: v[2]}
	editor.SetTransform(t)
	editor.SyncQuaternionToRPY()
	return nil
}

func runUnits(editor *grasplan.Editor, args []string) error {
	if len(args) != 1 || (args[0] != "deg" && args[0] != "rad") {
		return errors.New("usage: units deg|rad")
	}
	t := editor.Transform()
	t.Degrees = args[0] == "deg"
	editor.SetTransform(t)
	return nil
}

func parseFloats(args []string, n int, usage string) ([]float64, error) {
	if len(args) != n {
		return nil, errors.New(usage)
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func printStatus(editor *grasplan.Editor) {
	fmt.Printf("object: %s, grasps: %d\n", editor.ObjectName(), editor.GraspCount())
	sel := editor.Selection()
	selected, hasIndex := sel.Index()
	// Selected grasps are shown in green, matching the viewer highlight.
	for i, g := range editor.Grasps() {
		pt := g.Point()
		eu := g.Orientation().EulerAngles()
		line := fmt.Sprintf("  [%d] xyz=(%.3f, %.3f, %.3f) rpy=(%.3f, %.3f, %.3f)",
			i, pt.X, pt.Y, pt.Z, eu.Roll, eu.Pitch, eu.Yaw)
		if sel.IsAll() || (hasIndex && i == selected) {
			line = color.GreenString(line)
		}
		fmt.Println(line)
	}
	switch {
	case sel.IsAll():
		fmt.Println("selection: all")
	case sel.IsNone():
		fmt.Println("selection: none")
	default:
		fmt.Printf("selection: grasp %d\n", selected)
	}
	t := editor.Transform()
	unit := "rad"
	if t.Degrees {
		unit = "deg"
	}
	fmt.Printf("transform: linear=(%.2f, %.2f, %.2f) rpy=(%.2f, %.2f, %.2f) %s quat=(%.4f, %.4f, %.4f, %.4f)\n",
		t.Linear.X, t.Linear.Y, t.Linear.Z,
		t.RPY[0], t.RPY[1], t.RPY[2], unit,
		t.Quat.Imag, t.Quat.Jmag, t.Quat.Kmag, t.Quat.Real)
}

func printHelp() {
	fmt.Print(`commands:
  load                          reload grasps from the YAML file
  save                          write grasps back to the YAML file
  print                         print the grasps as YAML
  status                        show selection and transform state
  select <index>|all|none       choose which grasps operations act on
  unselect                      clear the selection
  delete                        delete the selected grasps
  mirror <axes> [replace]       mirror selected grasps about x, y and/or z
  circle <axes> <step> <count>  build a circular pattern from the selection
  move <x> <y> <z>              set the transform translation
  rotate <roll> <pitch> <yaw>   set the transform rotation and preview it
  quat <x> <y> <z> <w>          set the transform quaternion and preview it
  apply                         apply the transform to the selection
  create                        append a grasp at the transform pose
  units deg|rad                 switch angle units
  quit                          exit
`)
}
