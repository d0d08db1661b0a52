package config

var Presets = map[string]*Config{
	"qubit-vacuum": {
		Scheme: "milstein", Dim: 2, Coupling: 1.0, InitState: "excited",
		Steps: 64, Horizon: 1.0, Trajectories: 256, Workers: 1,
	},
	"qubit-thermal": {
		Scheme: "milstein", Dim: 2, Coupling: 1.0, NTherm: 0.2, InitState: "excited",
		Steps: 64, Horizon: 1.0, Trajectories: 256, Workers: 1,
	},
	"qubit-squeezed": {
		Scheme: "taylor15", Dim: 2, Coupling: 1.0, NTherm: 0.2, MSqRe: 0.1, MSqIm: 0.05,
		InitState: "excited", Steps: 64, Horizon: 1.0, Trajectories: 256, Workers: 1,
	},
	"qubit-driven": {
		Scheme: "taylor15", Dim: 2, Coupling: 1.0, Omega: 2.0, InitState: "plus",
		Steps: 128, Horizon: 2.0, Trajectories: 256, Workers: 4,
	},
	"qutrit-vacuum": {
		Scheme: "milstein", Dim: 3, Coupling: 1.0, InitState: "excited",
		Steps: 64, Horizon: 1.0, Trajectories: 128, Workers: 4,
	},
	"faulty-control": {
		Scheme: "faulty-milstein", Dim: 2, Coupling: 1.0, InitState: "excited",
		Steps: 64, Horizon: 1.0, Trajectories: 256, Workers: 1,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
