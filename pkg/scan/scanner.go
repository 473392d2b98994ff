package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"saveward/pkg/config"
	"saveward/pkg/utils/fileutils"
)

// Scan walks a game's configured save locations and classifies each
// file against the most recent backup. prev maps file paths to content
// hashes from that backup; nil means no backup exists yet, so every
// file is New. Unreadable entries are skipped rather than failing the
// scan; a missing save location simply contributes nothing.
func Scan(game config.Game, prev map[string]string) (*Result, error) {
	res := &Result{Game: game.Name}

	for _, root := range game.Paths {
		absRoot, err := fileutils.AbsPath(root)
		if err != nil {
			return nil, fmt.Errorf("resolve save location for %s: %w", game.Name, err)
		}

		walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			hash, err := HashFile(path)
			if err != nil {
				return nil
			}

			res.Files = append(res.Files, File{
				Path:   path,
				Size:   uint64(info.Size()),
				Hash:   hash,
				Change: classify(prev, path, hash),
				Alt:    game.RedirectFor(path),
			})
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("scan %s: %w", absRoot, walkErr)
		}
	}

	return res, nil
}

func classify(prev map[string]string, path, hash string) Change {
	if prev == nil {
		return ChangeNew
	}
	old, known := prev[path]
	switch {
	case !known:
		return ChangeNew
	case old == hash:
		return ChangeSame
	default:
		return ChangeDifferent
	}
}

// HashFile returns the hex sha256 of the file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
