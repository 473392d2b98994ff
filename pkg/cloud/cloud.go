// Package cloud compares the local backup store against a mirrored
// remote directory and synchronizes the two.
package cloud

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"saveward/pkg/scan"
	"saveward/pkg/utils/fileutils"
)

// Change is one path whose local and remote copies differ.
type Change struct {
	Path string
	Kind scan.Change
}

// Changes diffs the local store against the remote, keyed by relative
// path: a path only present locally is New, one whose contents differ
// is Different, and one only present remotely is Unknown (nothing
// local to compare against). Identical paths are not reported. The
// result is ordered by (kind, path).
func Changes(local, remote string) ([]Change, error) {
	localFiles, err := hashTree(local)
	if err != nil {
		return nil, err
	}
	remoteFiles, err := hashTree(remote)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for path, hash := range localFiles {
		remoteHash, present := remoteFiles[path]
		switch {
		case !present:
			changes = append(changes, Change{Path: path, Kind: scan.ChangeNew})
		case remoteHash != hash:
			changes = append(changes, Change{Path: path, Kind: scan.ChangeDifferent})
		}
	}
	for path := range remoteFiles {
		if _, present := localFiles[path]; !present {
			changes = append(changes, Change{Path: path, Kind: scan.ChangeUnknown})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Kind != changes[j].Kind {
			return changes[i].Kind < changes[j].Kind
		}
		return changes[i].Path < changes[j].Path
	})
	return changes, nil
}

// Conflicted reports whether any change means the remote diverged from
// the local store, which requires a sync before backing up is safe.
func Conflicted(changes []Change) bool {
	for _, c := range changes {
		if c.Kind == scan.ChangeDifferent {
			return true
		}
	}
	return false
}

// Sync copies every local file up to the remote, overwriting divergent
// copies. Remote-only files are left alone.
func Sync(local, remote string) error {
	localFiles, err := hashTree(local)
	if err != nil {
		return err
	}
	remoteFiles, err := hashTree(remote)
	if err != nil {
		return err
	}

	for path, hash := range localFiles {
		if remoteFiles[path] == hash {
			continue
		}
		src := filepath.Join(local, filepath.FromSlash(path))
		dest := filepath.Join(remote, filepath.FromSlash(path))
		if err := fileutils.CopyFile(src, dest); err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
	}
	return nil
}

// hashTree maps slash-separated relative paths to content hashes. A
// missing root is an empty tree, not an error.
func hashTree(root string) (map[string]string, error) {
	files := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		hash, err := scan.HashFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = hash
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
