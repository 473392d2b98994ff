package report

// CloudConflict marks that the local store and the cloud remote have
// diverged. It carries no payload; presence is the signal.
type CloudConflict struct{}

// CloudSyncFailed marks that synchronizing with the cloud failed.
type CloudSyncFailed struct{}

// Concerns accumulates cross-game warning and error flags. Setting a
// concern twice has no additional effect.
type Concerns struct {
	SomeGamesFailed bool             `json:"someGamesFailed,omitempty"`
	UnknownGames    []string         `json:"unknownGames,omitempty"`
	CloudConflict   *CloudConflict   `json:"cloudConflict,omitempty"`
	CloudSyncFailed *CloudSyncFailed `json:"cloudSyncFailed,omitempty"`
}

// Messages maps the currently-set concerns to warning strings for the
// text report, in fixed order: cloud conflict, then cloud sync
// failure. SomeGamesFailed and UnknownGames intentionally produce no
// message here; they already surface through per-line failure markers
// and the process exit status.
func (c *Concerns) Messages(tr Translator) []string {
	var out []string
	if c.CloudConflict != nil {
		out = append(out, tr.CloudConflictWarning())
	}
	if c.CloudSyncFailed != nil {
		out = append(out, tr.CloudSyncFailedWarning())
	}
	return out
}
