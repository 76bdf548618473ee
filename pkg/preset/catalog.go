package preset

// Examples is the built-in surface catalog: pure data, keyed by a short
// name, each entry shaped like a preset without the type/version stamp.
var Examples = map[string]Preset{
	"sphere": {
		Name: "Sphere",
		X:    "cos(u) * cos(v)",
		Y:    "sin(u) * cos(v)",
		Z:    "sin(v)",
		UMin: "0", UMax: "2 * pi",
		VMin: "-pi / 2", VMax: "pi / 2",
		USteps: 64, VSteps: 32,
	},
	"torus": {
		Name: "Torus",
		X:    "(2 + 0.7 * cos(v)) * cos(u)",
		Y:    "(2 + 0.7 * cos(v)) * sin(u)",
		Z:    "0.7 * sin(v)",
		UMin: "0", UMax: "2 * pi",
		VMin: "0", VMax: "2 * pi",
		USteps: 64, VSteps: 32,
	},
	"cylinder": {
		Name: "Cylinder",
		X:    "cos(u)",
		Y:    "sin(u)",
		Z:    "v",
		UMin: "0", UMax: "2 * pi",
		VMin: "-1", VMax: "1",
		USteps: 48, VSteps: 8,
	},
	"mobius": {
		Name: "Mobius Strip",
		X:    "(1 + 0.5 * v * cos(u / 2)) * cos(u)",
		Y:    "(1 + 0.5 * v * cos(u / 2)) * sin(u)",
		Z:    "0.5 * v * sin(u / 2)",
		UMin: "0", UMax: "2 * pi",
		VMin: "-1", VMax: "1",
		USteps: 96, VSteps: 8,
	},
	"saddle": {
		Name: "Saddle",
		X:    "u",
		Y:    "v",
		Z:    "u^2 - v^2",
		UMin: "-1", UMax: "1",
		VMin: "-1", VMax: "1",
		USteps: 32, VSteps: 32,
	},
	"heart": {
		Name: "Heart Ribbon",
		X:    "0.1 * (16 * sin(u)^3)",
		Y:    "0.1 * (13 * cos(u) - 5 * cos(2*u) - 2 * cos(3*u) - cos(4*u))",
		Z:    "v",
		UMin: "0", UMax: "2 * pi",
		VMin: "-0.3", VMax: "0.3",
		USteps: 128, VSteps: 4,
	},
}
