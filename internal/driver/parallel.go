package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stencil/internal/snapshot"
)

// Stage names one step of the per-manifest pipeline, for progress UIs.
type Stage uint8

const (
	StageLoad Stage = iota
	StageBuild
	StageAnalyze
)

type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event is one progress notification from AnalyzeDir.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// ListManifests returns every *.toml under dir, sorted for deterministic
// processing order.
func ListManifests(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".toml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every manifest under dir with up to jobs workers.
// Results come back in file order regardless of completion order. When
// events is non-nil, one notification is sent per stage transition; the
// channel is closed before returning.
func AnalyzeDir(ctx context.Context, dir string, jobs int, cache *snapshot.DiskCache, events chan<- Event) ([]*Result, error) {
	if events != nil {
		defer close(events)
	}

	files, err := ListManifests(dir)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(events, Event{File: file, Stage: StageLoad, Status: StatusWorking})
			res, err := Analyze(file, cache)
			if err != nil {
				emit(events, Event{File: file, Stage: StageAnalyze, Status: StatusError})
				return err
			}
			results[i] = res
			emit(events, Event{File: file, Stage: StageAnalyze, Status: StatusDone})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func emit(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}
