package scottvm

// Options is the small set of run-mode switches the CLI collects (§6).
// Unlike the teacher's generic map-backed config, every flag here is a
// fixed, known quantity, so a plain struct is clearer than a map.
type Options struct {
	YouAre          bool
	Debug           bool
	ScottLight      bool
	TRS80           bool
	PrehistoricLamp bool
	NoSplitWindow   bool

	Width     int
	TopHeight int
}

// NewOptions returns the default run mode: first-person phrasing, no
// debug tracing, default light warnings, 80-column layout.
func NewOptions() Options {
	return Options{
		Width:     80,
		TopHeight: 1,
	}
}

// ApplyTRS80 switches layout to the TRS-80 defaults named in the CLI
// design: a 64-column width and an 11-row status region.
func (o *Options) ApplyTRS80() {
	o.TRS80 = true
	o.Width = 64
	o.TopHeight = 11
}

// TRS80Divider is the literal divider line TRS80 mode prints between the
// status region and the transcript.
const TRS80Divider = "\n<------------------------------------------------------------>\n"
