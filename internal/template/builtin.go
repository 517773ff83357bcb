package template

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*.yaml
var builtinDefinitions embed.FS

// Builtin returns the definitions shipped with the binary, rooted so that
// each template sits at "<id>.yaml".
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinDefinitions, "definitions")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory exists
	}
	return sub
}
