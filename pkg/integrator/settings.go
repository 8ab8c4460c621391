package integrator

// Settings holds the path tracer controls. The control layer may change
// them between sampling batches.
type Settings struct {
	PathLength     int     // Maximum bounces per path
	PureImportance bool    // Replace gathered light by a constant to show path density
	DirectLightRay bool    // Draw the final connection of escaping paths to visible lights
	Exposure       float64 // Display brightness scale
	Timelapse      bool    // Pause between progressive passes
	BatchSize      int     // Lines buffered before they are flushed to the sink
}

// DefaultSettings returns the settings a fresh tracer starts with
func DefaultSettings() Settings {
	return Settings{
		PathLength: 5,
		Exposure:   1.0,
		BatchSize:  1024,
	}
}

// ExposureStep is the change applied by ExposureUp and ExposureDown
const ExposureStep = 0.1

func (s *Settings) ExposureUp()   { s.Exposure += ExposureStep }
func (s *Settings) ExposureDown() { s.Exposure -= ExposureStep }

// PathLengthUp adds one bounce
func (s *Settings) PathLengthUp() { s.PathLength++ }

// PathLengthDown removes one bounce, never going below zero
func (s *Settings) PathLengthDown() {
	s.PathLength = max(0, s.PathLength-1)
}

func (s *Settings) ToggleTimelapse()      { s.Timelapse = !s.Timelapse }
func (s *Settings) TogglePureImportance() { s.PureImportance = !s.PureImportance }
func (s *Settings) ToggleDirectLightRay() { s.DirectLightRay = !s.DirectLightRay }
