package scene

// Units are the length units of scenes, models and setups.
var Units = []string{"mm", "cm", "m", "km", "in", "ft", "yd", "mi"}

// DefaultUnits indexes "cm".
const DefaultUnits = 1

func unitsOption(label string) int {
	for i, u := range Units {
		if u == label {
			return i
		}
	}
	return DefaultUnits
}
