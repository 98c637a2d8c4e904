package adapter

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed scripts/*.sh
var launcherScripts embed.FS

// ScriptSource provides the launcher script templates staged into checkouts.
type ScriptSource interface {
	// Template returns the raw template named name, e.g. "pit.sh".
	Template(name string) ([]byte, error)
}

// LocalScriptSource serves the built-in templates, preferring same-named
// files from an override directory when one is configured.
type LocalScriptSource struct {
	dir string
}

// NewLocalScriptSource constructs a LocalScriptSource. An empty dir uses only
// the built-in templates.
func NewLocalScriptSource(dir string) *LocalScriptSource {
	return &LocalScriptSource{dir: dir}
}

// Template loads a launcher template by file name.
func (s *LocalScriptSource) Template(name string) ([]byte, error) {
	if s.dir != "" {
		// #nosec G304 - the override directory comes from the user's config
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return data, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return launcherScripts.ReadFile("scripts/" + name)
}
