package report

import "saveward/pkg/scan"

// ChangeCounts is the histogram of overall game changes.
type ChangeCounts struct {
	New       int `json:"new"`
	Different int `json:"different"`
	Same      int `json:"same"`
}

// OverallStatus holds the run-wide totals. The zero value is the
// explicit all-zero summary rendered for an empty run.
type OverallStatus struct {
	TotalGames     int          `json:"totalGames"`
	TotalBytes     uint64       `json:"totalBytes"`
	ProcessedGames int          `json:"processedGames"`
	ProcessedBytes uint64       `json:"processedBytes"`
	ChangedGames   ChangeCounts `json:"changedGames"`
}

// AddGame folds one game into the totals. Every game counts toward
// TotalGames and TotalBytes; only processed games count toward the
// processed totals, with failed entries excluded from ProcessedBytes.
// The game's overall change increments exactly one change bucket;
// Unknown increments none.
func (s *OverallStatus) AddGame(res *scan.Result, backup *scan.BackupInfo, processed bool) {
	s.TotalGames++
	s.TotalBytes += res.SumBytes(nil)

	if processed {
		s.ProcessedGames++
		s.ProcessedBytes += res.SumBytes(backup)
	}

	switch res.OverallChange() {
	case scan.ChangeNew:
		s.ChangedGames.New++
	case scan.ChangeDifferent:
		s.ChangedGames.Different++
	case scan.ChangeSame:
		s.ChangedGames.Same++
	}
}
