package supportplane

import (
	"math"
	"math/rand"
	"time"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/spatialmath"
)

// Generator produces placement and insertion poses for known object classes
// over a scene snapshot.
type Generator struct {
	cfg    Config
	logger logging.Logger
	rng    *rand.Rand
}

// NewGenerator creates a Generator with the given configuration. A nil config
// uses DefaultConfig.
func NewGenerator(cfg *Config, logger logging.Logger) *Generator {
	if cfg == nil {
		c := DefaultConfig()
		cfg = &c
	}
	return &Generator{
		cfg:    *cfg,
		logger: logger,
		//nolint:gosec
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// classOrientation returns the orientation corrections for a class, or the
// zero corrections for classes without an entry.
func (g *Generator) classOrientation(objectClass string) ClassOrientation {
	return g.cfg.ClassOrientations[objectClass]
}

// uniform draws from the interval between a and b. The bounds may be given
// in either order.
func (g *Generator) uniform(a, b float64) float64 {
	return a + g.rng.Float64()*(b-a)
}

// round4 rounds to four decimal places, the precision of generated coordinates.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// eulerPose builds a pose from a position and roll/pitch/yaw radians.
func eulerPose(pt r3.Vector, roll, pitch, yaw float64) spatialmath.Pose {
	return spatialmath.NewPose(pt, &spatialmath.EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw})
}
