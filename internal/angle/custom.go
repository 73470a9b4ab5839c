package angle

// CustomPrompts is the host-supplied override table. Each phrase list is a
// "|"-separated string; Color is a template where "$1" stands for the hex color.
type CustomPrompts struct {
	UseCustom         bool   `json:"use_custom" yaml:"use_custom"`
	Azimuth           string `json:"azimuth" yaml:"azimuth"`
	Elevation         string `json:"elevation" yaml:"elevation"`
	Intensity         string `json:"intensity" yaml:"intensity"`
	Color             string `json:"color" yaml:"color"`
	GlobalConstraints string `json:"global_constraints,omitempty" yaml:"global_constraints,omitempty"`
}

// Clone returns a copy so a stored table is never shared with a caller.
func (c *CustomPrompts) Clone() *CustomPrompts {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
