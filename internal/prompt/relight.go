package prompt

import (
	"encoding/json"
	"strings"

	"github.com/Faultbox/lightrig/internal/angle"
)

// DefaultGlobalConstraints prefixes every relighting prompt unless the custom table overrides it.
const DefaultGlobalConstraints = "SCENE LOCK, FIXED VIEWPOINT, maintaining character consistency and pose. RELIGHTING ONLY: "

const cinematicSuffix = "cinematic relighting"

var (
	relightPositionPhrases = [8]string{
		"light source in front",
		"light source from the front-right",
		"light source from the right",
		"light source from the back-right",
		"light source from behind",
		"light source from the back-left",
		"light source from the left",
		"light source from the front-left",
	}

	relightElevationBounds  = []float64{-30, -10, 20, 60}
	relightElevationPhrases = []string{
		"uplighting, light source positioned below the character, light shining upwards",
		"low-angle light source from below, upward illumination",
		"horizontal level light source",
		"high-angle light source",
		"overhead top-down light source",
	}

	relightIntensityBounds  = []float64{3, 7}
	relightIntensityPhrases = []string{"soft", "bright", "intense"}
)

// LightConfig describes one light for the relighting prompt.
type LightConfig struct {
	Azimuth   float64     `json:"azimuth" yaml:"azimuth"`
	Elevation float64     `json:"elevation" yaml:"elevation"`
	Intensity float64     `json:"intensity" yaml:"intensity"`
	Color     angle.Color `json:"-" yaml:"-"`
}

// LightFromState builds a light config from the widget state.
func LightFromState(s angle.State) LightConfig {
	return LightConfig{
		Azimuth:   float64(s.RoundedAzimuth()),
		Elevation: float64(s.RoundedElevation()),
		Intensity: s.RoundedDistance(),
		Color:     s.LightColor,
	}
}

// RelightOptions controls the relighting prompt.
type RelightOptions struct {
	Cinematic bool
	// GlobalConstraints replaces the built-in prefix when not blank. It is used
	// verbatim, so it carries its own trailing separator. A custom table's own
	// global_constraints still wins.
	GlobalConstraints string
	// Custom overrides the built-in wording when it is non-nil and UseCustom is set.
	Custom *angle.CustomPrompts
}

func (o RelightOptions) custom() *angle.CustomPrompts {
	if o.Custom != nil && o.Custom.UseCustom {
		return o.Custom
	}
	return nil
}

// Relight builds the full prompt for a downstream relighting model:
// "<constraints><position>, <elevation>, <intensity> <color>[, cinematic relighting]".
func Relight(l LightConfig, opts RelightOptions) string {
	table := opts.custom()
	if table == nil {
		table = &angle.CustomPrompts{}
	}

	az := angle.ClampAzimuth(l.Azimuth)
	el := angle.ClampElevation(l.Elevation)
	in := angle.ClampDistance(l.Intensity)

	position, ok := pickRelightPhrase(foldAzimuth(az), angle.MinAzimuth, angle.MaxAzimuth, table.Azimuth)
	if !ok {
		position = relightPositionPhrases[AzimuthSector(foldAzimuth(az))]
	}
	elevation, ok := pickRelightPhrase(el, angle.MinElevation, angle.MaxElevation, table.Elevation)
	if !ok {
		elevation = relightElevationPhrases[bucket(el, relightElevationBounds)]
	}
	intensity, ok := pickRelightPhrase(in, angle.MinDistance, angle.MaxDistance, table.Intensity)
	if !ok {
		intensity = relightIntensityPhrases[bucket(in, relightIntensityBounds)]
	}
	color := "colored light (" + l.Color.String() + ")"
	if tmpl := table.Color; strings.TrimSpace(tmpl) != "" {
		color = strings.ReplaceAll(tmpl, ColorMarker, l.Color.String())
	}

	// The constraints are concatenated as-is; the built-in prefix ends in ": ".
	constraints := DefaultGlobalConstraints
	if strings.TrimSpace(opts.GlobalConstraints) != "" {
		constraints = opts.GlobalConstraints
	}
	if gc := strings.TrimSpace(table.GlobalConstraints); gc != "" {
		constraints = gc
	}

	var b strings.Builder
	b.WriteString(constraints)
	b.WriteString(position)
	b.WriteString(", ")
	b.WriteString(elevation)
	b.WriteString(", ")
	b.WriteString(intensity)
	b.WriteString(" ")
	b.WriteString(color)
	if opts.Cinematic {
		b.WriteString(", ")
		b.WriteString(cinematicSuffix)
	}
	return b.String()
}

// pickRelightPhrase is pickPhrase for the relighting prompt, which only takes
// lists holding at least one separator. A single bare phrase keeps the built-in wording.
func pickRelightPhrase(value, min, max float64, list string) (string, bool) {
	if !strings.Contains(list, PhraseSeparator) {
		return "", false
	}
	return pickPhrase(value, min, max, list)
}

func foldAzimuth(az float64) float64 {
	if az >= 360 {
		return az - 360
	}
	return az
}

// lightOverride is one entry of a multi-light JSON array; absent keys keep the base value.
type lightOverride struct {
	Azimuth   *float64 `json:"azimuth"`
	Elevation *float64 `json:"elevation"`
	Intensity *float64 `json:"intensity"`
	Color     *string  `json:"color"`
}

// RelightBatch builds one prompt per entry of configsJSON, each entry overriding
// fields of base. Empty, "[]" or malformed JSON yields the single base prompt.
func RelightBatch(base LightConfig, opts RelightOptions, configsJSON string) []string {
	var overrides []lightOverride
	if s := strings.TrimSpace(configsJSON); s != "" && s != "[]" {
		if err := json.Unmarshal([]byte(s), &overrides); err != nil {
			overrides = nil
		}
	}
	if len(overrides) == 0 {
		return []string{Relight(base, opts)}
	}

	prompts := make([]string, 0, len(overrides))
	for _, o := range overrides {
		l := base
		if o.Azimuth != nil {
			l.Azimuth = *o.Azimuth
		}
		if o.Elevation != nil {
			l.Elevation = *o.Elevation
		}
		if o.Intensity != nil {
			l.Intensity = *o.Intensity
		}
		if o.Color != nil {
			l.Color = angle.ParseColorOr(*o.Color, base.Color)
		}
		prompts = append(prompts, Relight(l, opts))
	}
	return prompts
}
