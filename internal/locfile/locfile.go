// Package locfile reads and writes namespace localization files laid out as
// <root>/<language-code>/<namespace>.json.
package locfile

import (
	"bytes"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"lockey/internal/loctree"
	"lockey/internal/perf"
)

// Path resolves the conventional location of one namespace file.
func Path(root string, language string, namespace string) string {
	return filepath.Join(root, language, namespace+".json")
}

// Read loads and parses one localization file. Failures are classified:
// *NotFoundError, *EmptyFileError (whitespace-only counts as empty),
// *MalformedError for JSON errors, anything else is a wrapped IO error.
func Read(fs afero.Fs, path string) (*loctree.Tree, error) {
	region := perf.StartRegionWithDetails("io.locfile.read", &perf.Details{"path": path})
	defer region.End()

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if !exists {
		return nil, &NotFoundError{Path: path}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &EmptyFileError{Path: path}
	}

	tree, err := loctree.Parse(data)
	if err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}

	return tree, nil
}

// Write marshals the tree and writes it atomically, creating the parent
// directory when needed.
func Write(fs afero.Fs, path string, tree *loctree.Tree) error {
	region := perf.StartRegionWithDetails("io.locfile.write", &perf.Details{"path": path})
	defer region.End()

	data, err := loctree.Marshal(tree)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	return WriteAtomic(fs, path, data)
}
