package render

// palette is the ten-color categorical palette used for components.
var palette = [...]string{
	"#1f77b4", // blue
	"#ff7f0e", // orange
	"#2ca02c", // green
	"#d62728", // red
	"#9467bd", // purple
	"#8c564b", // brown
	"#e377c2", // pink
	"#7f7f7f", // gray
	"#bcbd22", // olive
	"#17becf", // cyan
}

// neutralColor is used for nodes without a component assignment.
const neutralColor = "#999999"

// Color returns the palette color for a component index. Indexes beyond the
// palette wrap around, so large decompositions reuse colors.
func Color(index int) string {
	if index < 0 {
		index = -index
	}
	return palette[index%len(palette)]
}

// Colors builds a component name to color lookup from an ordered name list.
// Names keep their color as long as their position is stable; unknown names
// fall back to a neutral gray.
func Colors(names []string) func(component string) string {
	m := make(map[string]string, len(names))
	for i, name := range names {
		m[name] = Color(i)
	}
	return func(component string) string {
		if c, ok := m[component]; ok {
			return c
		}
		return neutralColor
	}
}
