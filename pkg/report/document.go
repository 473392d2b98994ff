package report

import (
	"time"

	"saveward/pkg/scan"
)

// The structured document schema. Field names and their order are a
// stable machine-readable contract; default-valued fields are omitted
// entirely, never emitted as false/empty/null.

type document struct {
	Errors  *Concerns            `json:"errors,omitempty"`
	Overall *OverallStatus       `json:"overall,omitempty"`
	Games   map[string]gameEntry `json:"games"`
}

// gameEntry is the tagged three-way game shape: exactly one of
// operative, stored, or found per game name.
type gameEntry interface {
	isGameEntry()
}

type operativeEntry struct {
	Decision scan.Decision            `json:"decision"`
	Change   scan.Change              `json:"change"`
	Files    map[string]fileEntry     `json:"files"`
	Registry map[string]registryEntry `json:"registry"`
}

type storedEntry struct {
	Backups []backupEntry `json:"backups"`
}

type foundEntry struct{}

func (operativeEntry) isGameEntry() {}
func (storedEntry) isGameEntry()    {}
func (foundEntry) isGameEntry()     {}

type fileEntry struct {
	Failed         bool        `json:"failed,omitempty"`
	Ignored        bool        `json:"ignored,omitempty"`
	Change         scan.Change `json:"change"`
	Bytes          uint64      `json:"bytes"`
	OriginalPath   string      `json:"originalPath,omitempty"`
	RedirectedPath string      `json:"redirectedPath,omitempty"`
	DuplicatedBy   []string    `json:"duplicatedBy,omitempty"`
}

type registryEntry struct {
	Failed       bool                          `json:"failed,omitempty"`
	Ignored      bool                          `json:"ignored,omitempty"`
	Change       scan.Change                   `json:"change"`
	DuplicatedBy []string                      `json:"duplicatedBy,omitempty"`
	Values       map[string]registryValueEntry `json:"values,omitempty"`
}

type registryValueEntry struct {
	Ignored      bool        `json:"ignored,omitempty"`
	Change       scan.Change `json:"change"`
	DuplicatedBy []string    `json:"duplicatedBy,omitempty"`
}

type backupEntry struct {
	Name    string    `json:"name"`
	When    time.Time `json:"when"`
	OS      string    `json:"os,omitempty"`
	Comment string    `json:"comment,omitempty"`
	Locked  bool      `json:"locked"`
}
