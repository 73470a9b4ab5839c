package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/prompt"
)

// lightSet is the YAML input of the relight command.
type lightSet struct {
	Cinematic         bool                 `yaml:"cinematic"`
	GlobalConstraints string               `yaml:"global_constraints"`
	Custom            *angle.CustomPrompts `yaml:"custom"`
	Base              lightSpec            `yaml:"base"`
	Lights            []lightSpec          `yaml:"lights"` // Each entry overrides Base
}

type lightSpec struct {
	Azimuth   *float64 `yaml:"azimuth" json:"azimuth,omitempty"`
	Elevation *float64 `yaml:"elevation" json:"elevation,omitempty"`
	Intensity *float64 `yaml:"intensity" json:"intensity,omitempty"`
	Color     *string  `yaml:"color" json:"color,omitempty"`
}

func loadLightSet(path string) (*lightSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseLightSet(data)
}

func parseLightSet(data []byte) (*lightSet, error) {
	var set lightSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing light set: %w", err)
	}
	return &set, nil
}

func loadCustomPrompts(path string) (*angle.CustomPrompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table angle.CustomPrompts
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing prompt table: %w", err)
	}
	return &table, nil
}

// base returns the base light with defaults for absent fields.
func (s *lightSet) base() (prompt.LightConfig, error) {
	l := prompt.LightConfig{
		Azimuth:   angle.DefaultAzimuth,
		Elevation: angle.DefaultElevation,
		Intensity: angle.DefaultDistance,
		Color:     angle.White,
	}
	b := s.Base
	if b.Azimuth != nil {
		l.Azimuth = *b.Azimuth
	}
	if b.Elevation != nil {
		l.Elevation = *b.Elevation
	}
	if b.Intensity != nil {
		l.Intensity = *b.Intensity
	}
	if b.Color != nil {
		c, err := angle.ParseColor(*b.Color)
		if err != nil {
			return l, err
		}
		l.Color = c
	}
	return l, nil
}

// Prompts renders one prompt per light, or the base prompt when there are none.
func (s *lightSet) Prompts() ([]string, error) {
	base, err := s.base()
	if err != nil {
		return nil, err
	}
	opts := prompt.RelightOptions{
		Cinematic:         s.Cinematic,
		GlobalConstraints: s.GlobalConstraints,
		Custom:            s.Custom,
	}

	overrides := ""
	if len(s.Lights) > 0 {
		data, err := json.Marshal(s.Lights)
		if err != nil {
			return nil, err
		}
		overrides = string(data)
	}
	return prompt.RelightBatch(base, opts, overrides), nil
}

func stateFromFlags(az, el, dist float64, mode, color string) (angle.State, error) {
	s := angle.New()
	s.SetAzimuth(az)
	s.SetElevation(el)
	s.SetDistance(dist)

	c, err := angle.ParseColor(color)
	if err != nil {
		return s, err
	}
	s.LightColor = c

	switch mode {
	case "default":
		s.SetMode(angle.ModeDefault)
	case "structured":
		s.SetMode(angle.ModeStructured)
	case "custom":
		s.SetMode(angle.ModeCustom)
	default:
		return s, fmt.Errorf("unknown mode %q", mode)
	}
	return s, nil
}
