package bus

import "strconv"

// Preset enumerates the predefined channels.
type Preset uint8

const (
	Default Preset = iota
	Gameplay
	UI
	Audio
	Input
	Network
	System
)

var presetNames = [...]string{
	Default:  "Default",
	Gameplay: "Gameplay",
	UI:       "UI",
	Audio:    "Audio",
	Input:    "Input",
	Network:  "Network",
	System:   "System",
}

// Presets returns every predefined channel in declaration order.
func Presets() []Preset {
	out := make([]Preset, len(presetNames))
	for i := range presetNames {
		out[i] = Preset(i)
	}
	return out
}

// ChannelName implements Named. Values outside the enumeration have no name.
func (p Preset) ChannelName() string {
	if int(p) < len(presetNames) {
		return presetNames[p]
	}
	return ""
}

// Channel converts the preset to its Channel. Out-of-range presets yield the zero Channel.
func (p Preset) Channel() Channel {
	return Channel{name: p.ChannelName()}
}

func (p Preset) String() string {
	if name := p.ChannelName(); name != "" {
		return name
	}
	return "Preset(" + strconv.Itoa(int(p)) + ")"
}
