// Package params loads pose-generation requests from YAML files with
// command-line overrides layered on top.
package params

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// PlaceRequest describes one placement-generation run.
type PlaceRequest struct {
	ObjectClass   string   `mapstructure:"object_class" validate:"required"`
	SupportObject string   `mapstructure:"support_object" validate:"required"`
	NumPoses      int      `mapstructure:"num_poses" validate:"gt=0"`
	MinDist       float64  `mapstructure:"min_dist" validate:"gte=0"`
	IgnoreMinDist []string `mapstructure:"ignore_min_dist"`

	// Plane adjustments applied to the support surface before sampling.
	XExtend float64 `mapstructure:"x_extend"`
	YExtend float64 `mapstructure:"y_extend"`
	XOffset float64 `mapstructure:"x_offset"`
	YOffset float64 `mapstructure:"y_offset"`
}

// InsertRequest describes one insertion-pose run.
type InsertRequest struct {
	ObjectClass      string `mapstructure:"object_class" validate:"required"`
	SupportObject    string `mapstructure:"support_object" validate:"required"`
	AlignWithSupport bool   `mapstructure:"align_with_support"`
}

// DefaultPlaceRequest returns the values used for fields absent from the
// request file.
func DefaultPlaceRequest() PlaceRequest {
	return PlaceRequest{
		NumPoses: 10,
		MinDist:  0.2, // m
	}
}

// DefaultInsertRequest returns the insertion request defaults.
func DefaultInsertRequest() InsertRequest {
	return InsertRequest{}
}

// Load fills out from a YAML request file and applies overrides on top.
// out must be a pointer to a struct already holding its defaults; file and
// override values replace only the fields they name. An empty path skips
// the file and applies overrides alone.
func Load(path string, overrides map[string]string, out any) error {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading request file: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing request file: %w", err)
		}
	}
	for k, v := range overrides {
		raw[k] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("building request decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	if err := validator.New().Struct(out); err != nil {
		return fmt.Errorf("validating request: %w", err)
	}
	return nil
}

// ParseOverrides turns repeated key=value arguments into an override map.
func ParseOverrides(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("override %q is not key=value", p)
		}
		overrides[k] = v
	}
	return overrides, nil
}
