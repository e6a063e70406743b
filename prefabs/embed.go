package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
)

// Dir is the on-disk prefab directory. Files there shadow the embedded copies
// so edits apply without a rebuild.
const Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var files embed.FS

// Load reads a character or level prefab by file name.
func Load(name string) ([]byte, error) {
	return read(ChangeSpec, name)
}

// LoadScript reads a tengo input script by file name.
func LoadScript(name string) ([]byte, error) {
	return read(ChangeScript, name)
}

func read(kind ChangeKind, name string) ([]byte, error) {
	rel := resolve(kind, name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}

// resolve maps a name as flags and watchers spell it ("walk_jump.tengo",
// "scripts/walk_jump.tengo", "prefabs/character.yaml") to its slash path
// inside Dir. Prefabs are flat; scripts live in scripts/.
func resolve(kind ChangeKind, name string) string {
	base := path.Base(filepath.ToSlash(name))
	if kind == ChangeScript {
		return path.Join("scripts", base)
	}
	return base
}
