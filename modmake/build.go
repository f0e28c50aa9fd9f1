package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	chugVersion = "0.1.0"
)

// platforms lists the os/arch pairs released for the chug CLI.
var platforms = [][2]string{
	{"windows", "amd64"},
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
}

func main() {
	b := NewBuild()

	app := NewAppBuild("chug", "cmd/chug", chugVersion)
	app.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", chugVersion).
			CgoEnabled(false)
	})
	for _, platform := range platforms {
		app.Variant(platform[0], platform[1])
	}
	b.ImportApp(app)

	b.Execute()
}
