package supportplane

import "math"

// Config holds all parameters for placement and insertion pose generation.
// Distances are in meters and angles in radians, matching the units of the
// grasp pose database.
type Config struct {
	Placement PlacementConfig
	Insertion InsertionConfig

	// ObjectHeights maps object classes to their full height in meters, used
	// to compute stacking heights for insertion.
	ObjectHeights map[string]float64

	// ClassOrientations maps object classes to orientation corrections
	// applied to their generated poses.
	ClassOrientations map[string]ClassOrientation
}

// PlacementConfig holds parameters for rejection-sampled placement poses.
type PlacementConfig struct {
	MinDist           float64 // Default min XY separation between samples
	RelaxedMinDist    float64 // Separation used once DensePoseCount is exceeded
	DensePoseCount    int     // Pose count above which MinDist is relaxed
	MaxSampleAttempts int     // Rejection sampling cap per pose
	SweepPoseCount    int     // Pose count above which yaw sweeps replace random yaw
	SweepSteps        int     // Number of poses per yaw sweep
	SweepYawStep      float64 // Yaw increment between sweep poses
	SurfaceClearance  float64 // Gap between the support surface and placed objects
}

// InsertionConfig holds parameters for insertion pose generation.
type InsertionConfig struct {
	SweepSteps   int     // Number of poses per yaw sweep
	SweepYawStep float64 // Default yaw increment between sweep poses
	ObjectGap    float64 // Vertical gap between stacked objects
}

// ClassOrientation holds per-class orientation corrections for generated
// poses, compensating for mesh modeling conventions.
type ClassOrientation struct {
	PlaceRoll   float64 // Roll applied to placement poses; 0 = level
	InsertRoll  float64 // Roll applied to insertion sweep poses; 0 = level
	AlignedRoll float64 // Replaces the support roll in aligned insertion poses; 0 = keep support roll
	YawStep     float64 // Sweep yaw increment override; 0 = InsertionConfig.SweepYawStep
}

// DefaultConfig returns a Config with the recorded object heights and
// orientation corrections of the mobipick object set.
func DefaultConfig() Config {
	return Config{
		Placement: PlacementConfig{
			MinDist:           0.2,
			RelaxedMinDist:    0.03,
			DensePoseCount:    100,
			MaxSampleAttempts: 50000,
			SweepPoseCount:    20,
			SweepSteps:        7,
			SweepYawStep:      0.5,
			SurfaceClearance:  0.001,
		},
		Insertion: InsertionConfig{
			SweepSteps:   7,
			SweepYawStep: 0.5,
			ObjectGap:    0.02,
		},
		ObjectHeights: map[string]float64{
			"power_drill_with_grip": 0.2205359935760498,
			"klt":                   0.14699999809265138,
			"multimeter":            0.04206399992108345,
			"relay":                 0.10436400026082993,
			"screwdriver":           0.034412000328302383,
			"insole":                0.21,
			"bag":                   0.34,
		},
		ClassOrientations: map[string]ClassOrientation{
			"power_drill_with_grip": {
				PlaceRoll:  -math.Pi / 2,
				InsertRoll: -math.Pi / 2,
			},
			"insole": {
				InsertRoll:  -1.54,
				AlignedRoll: -1.54,
				YawStep:     3.14159, // ~180 degrees, flips instead of sweeping
			},
		},
	}
}
