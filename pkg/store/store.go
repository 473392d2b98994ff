// Package store manages the local backup store: one directory per
// game, one timestamped subdirectory per backup, each holding a JSON
// manifest and a content-addressed payload.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"saveward/pkg/scan"
	"saveward/pkg/utils/fileutils"
)

const (
	manifestFile = "manifest.json"
	payloadDir   = "files"
)

var ErrNoBackups = errors.New("no backups stored for game")

// nowFunc is replaceable in tests.
var nowFunc = time.Now

// Store points at the backup store root.
type Store struct {
	Root string
}

// Backup describes one stored backup.
type Backup struct {
	Name    string
	When    time.Time // UTC
	OS      string
	Comment string
	Locked  bool
}

// CreateOptions carries caller-provided metadata for a new backup.
type CreateOptions struct {
	Comment string
	Locked  bool
}

type backupManifest struct {
	Name    string                `json:"name"`
	When    time.Time             `json:"when"`
	OS      string                `json:"os,omitempty"`
	Comment string                `json:"comment,omitempty"`
	Locked  bool                  `json:"locked"`
	Files   map[string]fileRecord `json:"files"`
}

type fileRecord struct {
	Hash string `json:"hash"`
	Size uint64 `json:"size"`
}

func (m backupManifest) descriptor() Backup {
	return Backup{
		Name:    m.Name,
		When:    m.When,
		OS:      m.OS,
		Comment: m.Comment,
		Locked:  m.Locked,
	}
}

// GamePath is the directory holding a game's backups.
func (s Store) GamePath(game string) string {
	return filepath.Join(s.Root, slugify(game))
}

func slugify(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == ' ', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.TrimSpace(mapped)
}

// Create stores a new backup from a scan result. Per-file copy
// failures are recorded in the returned BackupInfo and excluded from
// the manifest; they never abort the backup. Ignored files are not
// stored.
func (s Store) Create(res *scan.Result, opts CreateOptions) (Backup, *scan.BackupInfo, error) {
	info := scan.NewBackupInfo()

	when := nowFunc().UTC()
	dir, name, err := s.newBackupDir(res.Game, when)
	if err != nil {
		return Backup{}, nil, err
	}

	m := backupManifest{
		Name:    name,
		When:    when,
		OS:      runtime.GOOS,
		Comment: opts.Comment,
		Locked:  opts.Locked,
		Files:   make(map[string]fileRecord, len(res.Files)),
	}

	for _, f := range res.Files {
		if f.Ignored {
			continue
		}
		if err := fileutils.CopyFile(f.Path, filepath.Join(dir, payloadDir, f.Hash)); err != nil {
			info.AddFailedFile(f.Path)
			continue
		}
		m.Files[f.Path] = fileRecord{Hash: f.Hash, Size: f.Size}
	}

	if err := writeManifest(filepath.Join(dir, manifestFile), m); err != nil {
		return Backup{}, nil, err
	}
	return m.descriptor(), info, nil
}

func (s Store) newBackupDir(game string, when time.Time) (string, string, error) {
	base := "backup-" + when.Format("20060102T150405Z")
	gameDir := s.GamePath(game)

	// Same-second backups get a numeric suffix.
	for attempt := 0; ; attempt++ {
		name := base
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d", base, attempt+1)
		}
		dir := filepath.Join(gameDir, name)
		err := os.MkdirAll(filepath.Dir(dir), 0o755)
		if err != nil {
			return "", "", fmt.Errorf("create game directory for %s: %w", game, err)
		}
		err = os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("create backup directory %s: %w", dir, err)
		}
	}
}

func writeManifest(path string, m backupManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

func readManifest(path string) (backupManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return backupManifest{}, err
	}
	var m backupManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return backupManifest{}, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return m, nil
}

// manifests returns a game's backup manifests, newest first.
func (s Store) manifests(game string) ([]backupManifest, error) {
	entries, err := os.ReadDir(s.GamePath(game))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backups for %s: %w", game, err)
	}

	var out []backupManifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := readManifest(filepath.Join(s.GamePath(game), entry.Name(), manifestFile))
		if err != nil {
			// A backup directory without a readable manifest is
			// skipped; it cannot be listed or restored from.
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].When.Equal(out[j].When) {
			return out[i].When.After(out[j].When)
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// List returns a game's backup descriptors, newest first.
func (s Store) List(game string) ([]Backup, error) {
	ms, err := s.manifests(game)
	if err != nil {
		return nil, err
	}
	backups := make([]Backup, 0, len(ms))
	for _, m := range ms {
		backups = append(backups, m.descriptor())
	}
	return backups, nil
}

// LatestHashes maps file paths to content hashes from the game's most
// recent backup. It returns nil (not an empty map) when no backup
// exists, so scanning can distinguish "first backup" from "empty
// backup".
func (s Store) LatestHashes(game string) (map[string]string, error) {
	ms, err := s.manifests(game)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, nil
	}

	hashes := make(map[string]string, len(ms[0].Files))
	for path, rec := range ms[0].Files {
		hashes[path] = rec.Hash
	}
	return hashes, nil
}

// PlanRestore builds a scan result describing what restoring the
// latest backup would do: each stored file keyed by its original path,
// classified against the file currently on disk.
func (s Store) PlanRestore(game string) (*scan.Result, error) {
	ms, err := s.manifests(game)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("%s: %w", game, ErrNoBackups)
	}

	res := &scan.Result{Game: game, Restoring: true}
	for path, rec := range ms[0].Files {
		change := scan.ChangeNew
		if current, err := scan.HashFile(path); err == nil {
			if current == rec.Hash {
				change = scan.ChangeSame
			} else {
				change = scan.ChangeDifferent
			}
		}
		res.Files = append(res.Files, scan.File{
			Path:   path,
			Size:   rec.Size,
			Hash:   rec.Hash,
			Change: change,
		})
	}
	return res, nil
}

// Restore copies the latest backup's payload back to the original
// paths named by the plan. Per-file failures are recorded, not fatal.
func (s Store) Restore(res *scan.Result) (*scan.BackupInfo, error) {
	info := scan.NewBackupInfo()

	ms, err := s.manifests(res.Game)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("%s: %w", res.Game, ErrNoBackups)
	}
	latest := ms[0]
	dir := filepath.Join(s.GamePath(res.Game), latest.Name)

	for _, f := range res.Files {
		if f.Ignored {
			continue
		}
		rec, stored := latest.Files[f.Path]
		if !stored {
			info.AddFailedFile(f.Path)
			continue
		}
		if err := fileutils.CopyFile(filepath.Join(dir, payloadDir, rec.Hash), f.Path); err != nil {
			info.AddFailedFile(f.Path)
		}
	}
	return info, nil
}

// Prune removes the oldest unlocked backups beyond keep and returns
// how many were removed. Locked backups are never pruned.
func (s Store) Prune(game string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	ms, err := s.manifests(game)
	if err != nil {
		return 0, err
	}

	var unlocked []backupManifest
	for _, m := range ms {
		if !m.Locked {
			unlocked = append(unlocked, m)
		}
	}
	if len(unlocked) <= keep {
		return 0, nil
	}

	removed := 0
	for _, m := range unlocked[keep:] { // manifests are newest first
		if err := os.RemoveAll(filepath.Join(s.GamePath(game), m.Name)); err != nil {
			return removed, fmt.Errorf("prune backup %s: %w", m.Name, err)
		}
		removed++
	}
	return removed, nil
}
