package scan

import "sort"

// Duplication is the duplicate status of one entry or game.
type Duplication int

const (
	// DuplicationUnique means no other game shares the entry.
	DuplicationUnique Duplication = iota
	// DuplicationResolved means the entry is shared, but at most one
	// of the sharing games still counts (the rest are ignored or
	// disabled), so there is nothing left to warn about.
	DuplicationResolved
	// DuplicationDuplicate means two or more games actively share the entry.
	DuplicationDuplicate
)

// Resolved reports whether the status requires no duplicate warning.
func (d Duplication) Resolved() bool {
	return d == DuplicationUnique || d == DuplicationResolved
}

const fingerprintSep = "\x00"

// DuplicateIndex maps content fingerprints to the games sharing them.
// Files, registry keys, and registry values each have an independent
// namespace. Games are registered up front with AddGame; queries never
// mutate the index.
type DuplicateIndex struct {
	files          map[string]map[string]bool
	registry       map[string]map[string]bool
	registryValues map[string]map[string]bool
	games          map[string]*gameFingerprints
}

type gameFingerprints struct {
	files          []string
	registry       []string
	registryValues []string
}

func NewDuplicateIndex() *DuplicateIndex {
	return &DuplicateIndex{
		files:          make(map[string]map[string]bool),
		registry:       make(map[string]map[string]bool),
		registryValues: make(map[string]map[string]bool),
		games:          make(map[string]*gameFingerprints),
	}
}

// AddGame registers a scan result's fingerprints. An owner only counts
// toward active duplication when the game is enabled and the entry is
// not ignored; other owners still appear in reverse lookups.
func (d *DuplicateIndex) AddGame(r *Result, enabled bool) {
	prints := &gameFingerprints{}
	d.games[r.Game] = prints

	for _, f := range r.Files {
		fp := f.fingerprint()
		prints.files = append(prints.files, fp)
		addOwner(d.files, fp, r.Game, enabled && !f.Ignored)
	}
	for _, k := range r.Registry {
		prints.registry = append(prints.registry, k.Path)
		addOwner(d.registry, k.Path, r.Game, enabled && !k.Ignored)

		for name, v := range k.Values {
			fp := k.Path + fingerprintSep + name
			prints.registryValues = append(prints.registryValues, fp)
			addOwner(d.registryValues, fp, r.Game, enabled && !v.Ignored)
		}
	}
}

func (f File) fingerprint() string {
	return f.Path + fingerprintSep + f.Hash
}

func addOwner(owners map[string]map[string]bool, fp, game string, counts bool) {
	if owners[fp] == nil {
		owners[fp] = make(map[string]bool)
	}
	owners[fp][game] = counts
}

func evaluate(owners map[string]bool) Duplication {
	if len(owners) < 2 {
		return DuplicationUnique
	}
	counting := 0
	for _, counts := range owners {
		if counts {
			counting++
		}
	}
	if counting <= 1 {
		return DuplicationResolved
	}
	return DuplicationDuplicate
}

func ownerNames(owners map[string]bool) []string {
	names := make([]string, 0, len(owners))
	for name := range owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *DuplicateIndex) IsFileDuplicated(f File) Duplication {
	return evaluate(d.files[f.fingerprint()])
}

// FileOwners returns every game sharing the file's fingerprint,
// including the owner itself, in lexical order.
func (d *DuplicateIndex) FileOwners(f File) []string {
	return ownerNames(d.files[f.fingerprint()])
}

func (d *DuplicateIndex) IsRegistryDuplicated(path string) Duplication {
	return evaluate(d.registry[path])
}

func (d *DuplicateIndex) RegistryOwners(path string) []string {
	return ownerNames(d.registry[path])
}

func (d *DuplicateIndex) IsRegistryValueDuplicated(path, name string) Duplication {
	return evaluate(d.registryValues[path+fingerprintSep+name])
}

func (d *DuplicateIndex) RegistryValueOwners(path, name string) []string {
	return ownerNames(d.registryValues[path+fingerprintSep+name])
}

// IsGameDuplicated is Duplicate when any of the game's entries is
// actively duplicated, Resolved when duplicates exist but are all
// resolved, and Unique otherwise.
func (d *DuplicateIndex) IsGameDuplicated(game string) Duplication {
	prints, known := d.games[game]
	if !known {
		return DuplicationUnique
	}

	worst := DuplicationUnique
	consider := func(status Duplication) {
		if status > worst {
			worst = status
		}
	}

	for _, fp := range prints.files {
		consider(evaluate(d.files[fp]))
	}
	for _, fp := range prints.registry {
		consider(evaluate(d.registry[fp]))
	}
	for _, fp := range prints.registryValues {
		consider(evaluate(d.registryValues[fp]))
	}
	return worst
}
