package palette

import "image/color"

// builtinNames lists the built-in palettes in menu order. The names are
// shared by the CLI flags, the favorites files, and the UI layers.
var builtinNames = []struct {
	name string
	id   BuiltinID
}{
	{"classic", Classic},
	{"fire", Fire},
	{"ocean", Ocean},
	{"forest", Forest},
	{"rainbow", Rainbow},
	{"pastel", Pastel},
	{"sunset", Sunset},
	{"ice", Ice},
	{"neon", Neon},
	{"grayscale", Grayscale},
}

// UserDefinedName is the name the user gradient is stored and selected by.
const UserDefinedName = "user-defined"

// Names returns all selectable palette names in menu order, the user
// gradient last.
func Names() []string {
	names := make([]string, 0, len(builtinNames)+1)
	for _, entry := range builtinNames {
		names = append(names, entry.name)
	}
	return append(names, UserDefinedName)
}

// Name returns the palette's selectable name.
func (p Palette) Name() string {
	if p.user {
		return UserDefinedName
	}
	for _, entry := range builtinNames {
		if entry.id == p.builtin {
			return entry.name
		}
	}
	return "classic"
}

// ByName looks up a palette by name. The user gradient name resolves using
// the supplied endpoint colors. Unknown names report ok = false.
func ByName(name string, userColors [2]color.RGBA) (p Palette, ok bool) {
	if name == UserDefinedName {
		return UserGradient(userColors[0], userColors[1]), true
	}
	for _, entry := range builtinNames {
		if entry.name == name {
			return BuiltIn(entry.id), true
		}
	}
	return Palette{}, false
}
