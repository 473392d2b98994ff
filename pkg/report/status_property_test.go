package report_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"saveward/pkg/report"
	"saveward/pkg/scan"
)

type scannedFile struct {
	size   uint64
	change scan.Change
	failed bool
}

func genScannedFile() gopter.Gen {
	return gopter.CombineGens(
		gen.UInt64Range(0, 1<<20),
		gen.IntRange(0, 3),
		gen.Bool(),
	).Map(func(vs []interface{}) scannedFile {
		return scannedFile{
			size:   vs[0].(uint64),
			change: scan.Change(vs[1].(int)),
			failed: vs[2].(bool),
		}
	})
}

func genGames() gopter.Gen {
	return gen.SliceOf(gen.SliceOf(genScannedFile()))
}

func toResult(game string, files []scannedFile) (*scan.Result, *scan.BackupInfo) {
	res := &scan.Result{Game: game}
	info := scan.NewBackupInfo()
	for i, f := range files {
		path := fmt.Sprintf("/%s/f%d", game, i)
		res.Files = append(res.Files, scan.File{
			Path:   path,
			Size:   f.size,
			Hash:   fmt.Sprintf("%d", i),
			Change: f.change,
		})
		if f.failed {
			info.AddFailedFile(path)
		}
	}
	return res, info
}

func foldStatus(games [][]scannedFile) *report.OverallStatus {
	status := &report.OverallStatus{}
	for i, files := range games {
		res, info := toResult(fmt.Sprintf("g%d", i), files)
		status.AddGame(res, info, true)
	}
	return status
}

func TestOverallStatusProperties(t *testing.T) {
	t.Parallel()

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("total bytes equal the sum of all file sizes", prop.ForAll(
		func(games [][]scannedFile) bool {
			var want uint64
			for _, files := range games {
				for _, f := range files {
					want += f.size
				}
			}
			return foldStatus(games).TotalBytes == want
		},
		genGames(),
	))

	properties.Property("processed bytes exclude exactly the failed files", prop.ForAll(
		func(games [][]scannedFile) bool {
			var want uint64
			for _, files := range games {
				for _, f := range files {
					if !f.failed {
						want += f.size
					}
				}
			}
			return foldStatus(games).ProcessedBytes == want
		},
		genGames(),
	))

	properties.Property("processed bytes never exceed total bytes", prop.ForAll(
		func(games [][]scannedFile) bool {
			status := foldStatus(games)
			return status.ProcessedBytes <= status.TotalBytes
		},
		genGames(),
	))

	properties.Property("change buckets never outnumber the games", prop.ForAll(
		func(games [][]scannedFile) bool {
			status := foldStatus(games)
			counted := status.ChangedGames.New + status.ChangedGames.Different + status.ChangedGames.Same
			return counted <= status.TotalGames
		},
		genGames(),
	))

	properties.Property("totals are independent of game order", prop.ForAll(
		func(games [][]scannedFile) bool {
			reversed := make([][]scannedFile, len(games))
			for i, files := range games {
				reversed[len(games)-1-i] = files
			}
			return *foldStatus(games) == *foldStatus(reversed)
		},
		genGames(),
	))

	properties.TestingRun(t)
}
