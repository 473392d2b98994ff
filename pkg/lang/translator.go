// Package lang is the English rendering of the text report: line
// wording, warning strings, timestamp localization, and binary-unit
// byte formatting.
package lang

import (
	"fmt"
	"time"

	"saveward/pkg/report"
	"saveward/pkg/scan"
)

var _ report.Translator = (*Translator)(nil)

type Translator struct{}

func New() *Translator {
	return &Translator{}
}

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB"}

// FormatBytes renders a size in fixed binary units: whole bytes below
// one KiB, two decimals above ("4 B", "100.00 KiB").
func (t *Translator) FormatBytes(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}

	value := float64(n)
	unit := byteUnits[0]
	for i, u := range byteUnits {
		value /= 1024
		unit = u
		if value < 1024 || i == len(byteUnits)-1 {
			break
		}
	}
	return fmt.Sprintf("%.2f %s", value, unit)
}

func changeTag(change scan.Change) string {
	switch change {
	case scan.ChangeNew, scan.ChangeDifferent:
		return " [" + change.Symbol() + "]"
	default:
		return ""
	}
}

func (t *Translator) GameHeader(name string, bytes uint64, decision scan.Decision, duplicated bool, change scan.Change) string {
	out := fmt.Sprintf("%s [%s]", name, t.FormatBytes(bytes))
	switch decision {
	case scan.DecisionIgnored:
		out += " [IGNORED]"
	case scan.DecisionPreviewed:
		out += " [PREVIEW]"
	}
	if duplicated {
		out += " [DUPLICATES]"
	}
	return out + changeTag(change) + ":"
}

func (t *Translator) GameLineItem(label string, successful, ignored, duplicated bool, change scan.Change, nested bool) string {
	indent := "  "
	if nested {
		indent = "    "
	}

	tags := ""
	if !successful {
		tags += "[FAILED] "
	}
	if ignored {
		tags += "[IGNORED] "
	}
	if duplicated {
		tags += "[DUPLICATED] "
	}
	switch change {
	case scan.ChangeNew, scan.ChangeDifferent:
		tags += "[" + change.Symbol() + "] "
	}

	return indent + "- " + tags + label
}

func (t *Translator) OriginalPathLine(alt string) string {
	return "    - originally: " + alt
}

func (t *Translator) RedirectedPathLine(alt string) string {
	return "    - redirecting to: " + alt
}

func (t *Translator) BackupsHeader(name string) string {
	return name + ":"
}

func (t *Translator) BackupLine(name string, when time.Time, os string, locked bool, comment string) string {
	line := fmt.Sprintf("  - %q (%s)", name, when.Local().Format("2006-01-02T15:04:05"))
	if os != "" {
		line += " [" + os + "]"
	}
	if locked {
		line += " [locked]"
	}
	if comment != "" {
		line += " - " + comment
	}
	return line
}

func (t *Translator) Summary(status *report.OverallStatus, location string) string {
	games := fmt.Sprintf("%d", status.TotalGames)
	if status.ChangedGames.New > 0 {
		games += fmt.Sprintf(" [+%d]", status.ChangedGames.New)
	}
	if status.ChangedGames.Different > 0 {
		games += fmt.Sprintf(" [Δ%d]", status.ChangedGames.Different)
	}

	size := t.FormatBytes(status.TotalBytes)
	if status.ProcessedBytes != status.TotalBytes {
		size = t.FormatBytes(status.ProcessedBytes) + " / " + size
	}

	return "Overall:\n" +
		"  Games: " + games + "\n" +
		"  Size: " + size + "\n" +
		"  Location: " + location
}

func (t *Translator) CloudConflictWarning() string {
	return "WARNING: Cloud backups are out of sync with the local store; synchronize to resolve."
}

func (t *Translator) CloudSyncFailedWarning() string {
	return "WARNING: Unable to synchronize with the cloud."
}

func (t *Translator) NoCloudChanges() string {
	return "No cloud changes."
}
