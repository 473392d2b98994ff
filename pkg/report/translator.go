package report

import (
	"time"

	"saveward/pkg/scan"
)

// Translator renders the human-readable strings of the text report.
// It is injected so that wording, number formatting, and timestamp
// localization stay outside the report itself (and can be stubbed in
// tests). The structured mode never consults it.
type Translator interface {
	// GameHeader renders a game's header line: name, processed byte
	// total, decision qualifier, duplicate flag, and overall change.
	GameHeader(name string, bytes uint64, decision scan.Decision, duplicated bool, change scan.Change) string

	// GameLineItem renders one file or registry entry. nested marks
	// registry values, which sit one level deeper.
	GameLineItem(label string, successful, ignored, duplicated bool, change scan.Change, nested bool) string

	// OriginalPathLine and RedirectedPathLine render a file's
	// alternate path: the former when restoring, the latter when
	// backing up.
	OriginalPathLine(alt string) string
	RedirectedPathLine(alt string) string

	BackupsHeader(name string) string
	BackupLine(name string, when time.Time, os string, locked bool, comment string) string

	// Summary renders the run-wide totals and the store location.
	Summary(status *OverallStatus, location string) string

	CloudConflictWarning() string
	CloudSyncFailedWarning() string
	NoCloudChanges() string
}
