package scan

import "sort"

// File is one file found while scanning a game's save locations.
type File struct {
	Path    string
	Size    uint64
	Hash    string
	Ignored bool
	Change  Change

	// Alt is the file's alternate path, if a redirect applies.
	// When backing up it is where the file will be stored; when
	// restoring it is where the file originally lived.
	Alt string
}

// RegistryValue is one value under a scanned registry key.
type RegistryValue struct {
	Ignored bool
	Change  Change
}

// RegistryKey is one registry key found while scanning.
type RegistryKey struct {
	Path    string
	Ignored bool
	Change  Change
	Values  map[string]RegistryValue
}

// SortedValueNames returns the key's value names in lexical order.
func (k RegistryKey) SortedValueNames() []string {
	names := make([]string, 0, len(k.Values))
	for name := range k.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result is everything found for one game during a scan.
type Result struct {
	Game      string
	Files     []File
	Registry  []RegistryKey
	Restoring bool
}

// BackupInfo records which scanned entries could not be processed.
type BackupInfo struct {
	FailedFiles    map[string]struct{}
	FailedRegistry map[string]struct{}
}

func NewBackupInfo() *BackupInfo {
	return &BackupInfo{
		FailedFiles:    make(map[string]struct{}),
		FailedRegistry: make(map[string]struct{}),
	}
}

func (b *BackupInfo) AddFailedFile(path string) {
	b.FailedFiles[path] = struct{}{}
}

func (b *BackupInfo) AddFailedRegistry(path string) {
	b.FailedRegistry[path] = struct{}{}
}

func (b *BackupInfo) FileFailed(path string) bool {
	if b == nil {
		return false
	}
	_, failed := b.FailedFiles[path]
	return failed
}

func (b *BackupInfo) RegistryFailed(path string) bool {
	if b == nil {
		return false
	}
	_, failed := b.FailedRegistry[path]
	return failed
}

func (b *BackupInfo) Empty() bool {
	return b == nil || (len(b.FailedFiles) == 0 && len(b.FailedRegistry) == 0)
}

// Reportable reports whether the scan found anything worth reporting.
func (r *Result) Reportable() bool {
	return len(r.Files) > 0 || len(r.Registry) > 0
}

// SumBytes totals the sizes of the found files. When backup is given,
// files that failed to process are excluded.
func (r *Result) SumBytes(backup *BackupInfo) uint64 {
	var total uint64
	for _, f := range r.Files {
		if backup.FileFailed(f.Path) {
			continue
		}
		total += f.Size
	}
	return total
}

// OverallChange folds the per-entry changes into one classification for
// the whole game. A game whose entries are all new is New; any new or
// different entry otherwise makes it Different; a game with no entries
// is Unknown; everything else is Same.
func (r *Result) OverallChange() Change {
	var total, brandNew, different int
	count := func(c Change) {
		total++
		switch c {
		case ChangeNew:
			brandNew++
		case ChangeDifferent:
			different++
		}
	}

	for _, f := range r.Files {
		count(f.Change)
	}
	for _, k := range r.Registry {
		count(k.Change)
		for _, v := range k.Values {
			count(v.Change)
		}
	}

	switch {
	case total == 0:
		return ChangeUnknown
	case brandNew == total:
		return ChangeNew
	case brandNew > 0 || different > 0:
		return ChangeDifferent
	default:
		return ChangeSame
	}
}

// SortedFiles returns the found files ordered by path.
func (r *Result) SortedFiles() []File {
	files := make([]File, len(r.Files))
	copy(files, r.Files)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// SortedRegistry returns the found registry keys ordered by path.
func (r *Result) SortedRegistry() []RegistryKey {
	keys := make([]RegistryKey, len(r.Registry))
	copy(keys, r.Registry)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Path < keys[j].Path
	})
	return keys
}
