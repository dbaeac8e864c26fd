package grasplan

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"
)

type graspEntry struct {
	Translation []float64 `yaml:"translation"`
	Rotation    []float64 `yaml:"rotation"`
}

type graspSet struct {
	GraspPoses []graspEntry `yaml:"grasp_poses"`
}

// LoadGraspsFile reads the grasps for one object class out of a YAML file
// keyed by object class. objectName may carry a trailing instance suffix
// such as "relay_1", which is stripped before the lookup. Rotations are
// stored as [x, y, z, w] and normalized on load.
func LoadGraspsFile(path, objectName string) ([]spatialmath.Pose, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grasps file: %w", err)
	}
	var objects map[string]graspSet
	if err := yaml.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("parsing grasps file: %w", err)
	}
	class := ObjectClass(objectName)
	set, ok := objects[class]
	if !ok {
		return nil, fmt.Errorf("object %q: %w", class, ErrObjectNotInFile)
	}
	poses := make([]spatialmath.Pose, 0, len(set.GraspPoses))
	for i, entry := range set.GraspPoses {
		if len(entry.Translation) != 3 {
			return nil, fmt.Errorf("grasp %d: translation needs 3 values, got %d", i, len(entry.Translation))
		}
		if len(entry.Rotation) != 4 {
			return nil, fmt.Errorf("grasp %d: rotation needs 4 values, got %d", i, len(entry.Rotation))
		}
		pt := r3.Vector{X: entry.Translation[0], Y: entry.Translation[1], Z: entry.Translation[2]}
		q := normalizeQuat(quat.Number{
			Real: entry.Rotation[3],
			Imag: entry.Rotation[0],
			Jmag: entry.Rotation[1],
			Kmag: entry.Rotation[2],
		})
		poses = append(poses, poseFromQuat(pt, q))
	}
	return poses, nil
}

// SaveGraspsFile writes grasps as a single-object YAML document, replacing
// whatever the file held before. The object name is reduced to its class
// before being used as the document key, so load and save agree.
func SaveGraspsFile(path, objectName string, grasps []spatialmath.Pose) error {
	data, err := marshalGrasps(objectName, grasps)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing grasps file: %w", err)
	}
	return nil
}

func marshalGrasps(objectName string, grasps []spatialmath.Pose) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, g := range grasps {
		pt := g.Point()
		q := g.Orientation().Quaternion()
		entry := &yaml.Node{Kind: yaml.MappingNode}
		entry.Content = append(entry.Content,
			scalarNode("translation"), floatSeqNode(pt.X, pt.Y, pt.Z),
			scalarNode("rotation"), floatSeqNode(q.Imag, q.Jmag, q.Kmag, q.Real),
		)
		seq.Content = append(seq.Content, entry)
	}
	obj := &yaml.Node{Kind: yaml.MappingNode}
	obj.Content = append(obj.Content, scalarNode("grasp_poses"), seq)
	root := &yaml.Node{
		Kind:        yaml.MappingNode,
		HeadComment: "this file was generated automatically by grasplan grasp editor",
	}
	root.Content = append(root.Content, scalarNode(ObjectClass(objectName)), obj)
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encoding grasps: %w", err)
	}
	return out, nil
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func floatSeqNode(vals ...float64) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range vals {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(v, 'f', 6, 64),
		})
	}
	return n
}

// ObjectClass strips a trailing numeric instance suffix from an object
// name, so "relay_1" becomes "relay". Names without such a suffix pass
// through unchanged.
func ObjectClass(name string) string {
	i := strings.LastIndexByte(name, '_')
	if i < 0 || i == len(name)-1 {
		return name
	}
	for _, r := range name[i+1:] {
		if r < '0' || r > '9' {
			return name
		}
	}
	return name[:i]
}

// LoadGrasps replaces the working set with the grasps stored for the
// editor's object. On failure the working set is left untouched.
func (e *Editor) LoadGrasps() error {
	poses, err := LoadGraspsFile(e.yamlPath, e.objectName)
	if err != nil {
		return err
	}
	e.publishObjectMesh()
	e.SetGrasps(poses)
	e.logger.Infof("loaded %d grasps for %q from %s", len(poses), e.objectName, e.yamlPath)
	return nil
}

// SaveGrasps writes the working set back to the editor's YAML file.
func (e *Editor) SaveGrasps() error {
	e.logger.Infof("writing grasps to file: %s", e.yamlPath)
	return SaveGraspsFile(e.yamlPath, e.objectName, e.grasps)
}

// GraspsYAML renders the working set in the on-disk YAML format.
func (e *Editor) GraspsYAML() (string, error) {
	data, err := marshalGrasps(e.objectName, e.grasps)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
