// Package report renders the results of a backup or restore run as
// either a human-readable text report or a machine-consumable JSON
// document. One reporter instance accumulates a whole run, one game at
// a time, and is rendered exactly once; identical input always
// produces byte-identical output.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"saveward/pkg/scan"
	"saveward/pkg/store"
)

// Reporter is the dual-mode report accumulator. It is not safe for
// concurrent use; the driver feeds it sequentially.
type Reporter interface {
	// AddGame records one game's scan outcome. It reports whether
	// every entry succeeded; a non-reportable scan result is skipped
	// entirely and counts as success.
	AddGame(name string, res *scan.Result, backup *scan.BackupInfo, decision scan.Decision, dupes *scan.DuplicateIndex) bool

	// AddBackups records a game's stored backups. Empty input is a
	// no-op.
	AddBackups(name string, backups []store.Backup)

	// AddFoundTitles records bare game names from a title search.
	AddFoundTitles(names []string)

	TripUnknownGames(names []string)
	TripCloudConflict()
	TripCloudSyncFailed()

	// SuppressOverall disables the run-wide summary for this run.
	SuppressOverall()

	// Render finalizes the accumulated state into one string.
	// location is the store path shown in the text summary.
	Render(location string) string

	// Print writes Render plus a trailing newline to stdout.
	Print(location string)

	// PrintFailure prints the report outside the normal success path,
	// so structured consumers still receive a document when the run
	// aborts. The text reporter does nothing; its caller prints
	// failure diagnostics separately.
	PrintFailure()
}

var (
	_ Reporter = (*StandardReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// othersOf drops the owning game from a duplicate owner list. A game
// never appears in its own duplicatedBy set.
func othersOf(owners []string, self string) []string {
	var out []string
	for _, owner := range owners {
		if owner != self {
			out = append(out, owner)
		}
	}
	return out
}

func sortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}

// StandardReporter buffers text lines and renders them with a summary
// block and any queued warnings.
type StandardReporter struct {
	tr     Translator
	parts  []string
	status *OverallStatus
	errors Concerns
}

func NewStandard(tr Translator) *StandardReporter {
	return &StandardReporter{
		tr:     tr,
		status: &OverallStatus{},
	}
}

func (r *StandardReporter) AddGame(name string, res *scan.Result, backup *scan.BackupInfo, decision scan.Decision, dupes *scan.DuplicateIndex) bool {
	if !res.Reportable() {
		return true
	}

	successful := true
	duplicated := !dupes.IsGameDuplicated(name).Resolved()
	r.parts = append(r.parts, r.tr.GameHeader(name, res.SumBytes(backup), decision, duplicated, res.OverallChange()))

	for _, f := range res.SortedFiles() {
		ok := !backup.FileFailed(f.Path)
		if !ok {
			successful = false
		}
		r.parts = append(r.parts, r.tr.GameLineItem(f.Path, ok, f.Ignored, !dupes.IsFileDuplicated(f).Resolved(), f.Change, false))

		if f.Alt != "" {
			if res.Restoring {
				r.parts = append(r.parts, r.tr.OriginalPathLine(f.Alt))
			} else {
				r.parts = append(r.parts, r.tr.RedirectedPathLine(f.Alt))
			}
		}
	}

	for _, k := range res.SortedRegistry() {
		ok := !backup.RegistryFailed(k.Path)
		if !ok {
			successful = false
		}
		r.parts = append(r.parts, r.tr.GameLineItem(k.Path, ok, k.Ignored, !dupes.IsRegistryDuplicated(k.Path).Resolved(), k.Change, false))

		for _, vname := range k.SortedValueNames() {
			v := k.Values[vname]
			r.parts = append(r.parts, r.tr.GameLineItem(vname, true, v.Ignored, !dupes.IsRegistryValueDuplicated(k.Path, vname).Resolved(), v.Change, true))
		}
	}

	// Blank line between games.
	r.parts = append(r.parts, "")

	if r.status != nil {
		r.status.AddGame(res, backup, decision == scan.DecisionProcessed)
	}
	if !successful {
		r.errors.SomeGamesFailed = true
	}
	return successful
}

func (r *StandardReporter) AddBackups(name string, backups []store.Backup) {
	if len(backups) == 0 {
		return
	}

	r.parts = append(r.parts, r.tr.BackupsHeader(name))
	for _, b := range backups {
		r.parts = append(r.parts, r.tr.BackupLine(b.Name, b.When, b.OS, b.Locked, b.Comment))
	}
	r.parts = append(r.parts, "")
}

func (r *StandardReporter) AddFoundTitles(names []string) {
	r.parts = append(r.parts, sortedCopy(names)...)
}

func (r *StandardReporter) TripUnknownGames(names []string) {
	r.errors.UnknownGames = sortedCopy(names)
}

func (r *StandardReporter) TripCloudConflict() {
	r.errors.CloudConflict = &CloudConflict{}
}

func (r *StandardReporter) TripCloudSyncFailed() {
	r.errors.CloudSyncFailed = &CloudSyncFailed{}
}

func (r *StandardReporter) SuppressOverall() {
	r.status = nil
}

func (r *StandardReporter) Render(location string) string {
	out := strings.Join(r.parts, "\n")
	if r.status == nil {
		return out
	}

	out += "\n" + r.tr.Summary(r.status, location)
	for _, msg := range r.errors.Messages(r.tr) {
		out += "\n\n" + msg
	}
	return out
}

func (r *StandardReporter) Print(location string) {
	fmt.Println(r.Render(location))
}

// PrintFailure is a no-op: failure diagnostics for the text report are
// printed generically by the caller.
func (r *StandardReporter) PrintFailure() {}

// JSONReporter accumulates the structured document.
type JSONReporter struct {
	doc document
}

func NewJSON() *JSONReporter {
	return &JSONReporter{
		doc: document{
			Overall: &OverallStatus{},
			Games:   make(map[string]gameEntry),
		},
	}
}

func (r *JSONReporter) concerns() *Concerns {
	if r.doc.Errors == nil {
		r.doc.Errors = &Concerns{}
	}
	return r.doc.Errors
}

func (r *JSONReporter) AddGame(name string, res *scan.Result, backup *scan.BackupInfo, decision scan.Decision, dupes *scan.DuplicateIndex) bool {
	if !res.Reportable() {
		return true
	}

	successful := true

	files := make(map[string]fileEntry, len(res.Files))
	for _, f := range res.SortedFiles() {
		entry := fileEntry{
			Failed:  backup.FileFailed(f.Path),
			Ignored: f.Ignored,
			Change:  f.Change,
			Bytes:   f.Size,
		}
		if !dupes.IsFileDuplicated(f).Resolved() {
			entry.DuplicatedBy = othersOf(dupes.FileOwners(f), name)
		}
		if f.Alt != "" {
			if res.Restoring {
				entry.OriginalPath = f.Alt
			} else {
				entry.RedirectedPath = f.Alt
			}
		}
		if entry.Failed {
			successful = false
		}
		files[f.Path] = entry
	}

	registry := make(map[string]registryEntry, len(res.Registry))
	for _, k := range res.SortedRegistry() {
		entry := registryEntry{
			Failed:  backup.RegistryFailed(k.Path),
			Ignored: k.Ignored,
			Change:  k.Change,
		}
		if !dupes.IsRegistryDuplicated(k.Path).Resolved() {
			entry.DuplicatedBy = othersOf(dupes.RegistryOwners(k.Path), name)
		}
		if len(k.Values) > 0 {
			entry.Values = make(map[string]registryValueEntry, len(k.Values))
			for vname, v := range k.Values {
				value := registryValueEntry{Ignored: v.Ignored, Change: v.Change}
				if !dupes.IsRegistryValueDuplicated(k.Path, vname).Resolved() {
					value.DuplicatedBy = othersOf(dupes.RegistryValueOwners(k.Path, vname), name)
				}
				entry.Values[vname] = value
			}
		}
		if entry.Failed {
			successful = false
		}
		registry[k.Path] = entry
	}

	if r.doc.Overall != nil {
		r.doc.Overall.AddGame(res, backup, decision == scan.DecisionProcessed)
	}
	r.doc.Games[name] = operativeEntry{
		Decision: decision,
		Change:   res.OverallChange(),
		Files:    files,
		Registry: registry,
	}

	if !successful {
		r.concerns().SomeGamesFailed = true
	}
	return successful
}

func (r *JSONReporter) AddBackups(name string, backups []store.Backup) {
	if len(backups) == 0 {
		return
	}

	entries := make([]backupEntry, 0, len(backups))
	for _, b := range backups {
		entries = append(entries, backupEntry{
			Name:    b.Name,
			When:    b.When.UTC(),
			OS:      b.OS,
			Comment: b.Comment,
			Locked:  b.Locked,
		})
	}
	r.doc.Games[name] = storedEntry{Backups: entries}
}

func (r *JSONReporter) AddFoundTitles(names []string) {
	for _, name := range names {
		r.doc.Games[name] = foundEntry{}
	}
}

func (r *JSONReporter) TripUnknownGames(names []string) {
	r.concerns().UnknownGames = sortedCopy(names)
}

func (r *JSONReporter) TripCloudConflict() {
	r.concerns().CloudConflict = &CloudConflict{}
}

func (r *JSONReporter) TripCloudSyncFailed() {
	r.concerns().CloudSyncFailed = &CloudSyncFailed{}
}

func (r *JSONReporter) SuppressOverall() {
	r.doc.Overall = nil
}

func (r *JSONReporter) Render(string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.doc); err != nil {
		// Only a malformed document schema can land here, which is a
		// programming defect rather than a runtime condition.
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (r *JSONReporter) Print(location string) {
	fmt.Println(r.Render(location))
}

// PrintFailure prints the document so API consumers always receive one,
// even when the run aborts.
func (r *JSONReporter) PrintFailure() {
	r.Print("")
}
