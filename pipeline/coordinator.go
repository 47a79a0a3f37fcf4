package pipeline

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/streambinder/tracksmith/entity"
)

const defaultSlots = 4

// Coordinator fans the pipeline out over a batch of
// tracks, a counting semaphore bounding how many run
// their fetch/convert/tag section at once
type Coordinator struct {
	Pipeline *Pipeline
	Slots    int
	// Overwrite replaces already-installed files; when
	// unset, tracks whose output exists are skipped
	// before ever taking a slot
	Overwrite bool
}

// BatchResult maps track IDs to their outcomes
type BatchResult map[string]Outcome

func (result BatchResult) Count(status Status) (count int) {
	for _, outcome := range result {
		if outcome.Status == status {
			count++
		}
	}
	return count
}

// RunBatch processes every given track, waiting for all of
// them before returning. Each submitted track yields exactly
// one outcome; a failure in one run never cancels another.
func (coordinator *Coordinator) RunBatch(tracks []*entity.Track) BatchResult {
	var (
		waitGroup sync.WaitGroup
		mutex     sync.Mutex
		slots     = coordinator.Slots
		results   = make(BatchResult, len(tracks))
		completed = 0
	)
	if slots <= 0 {
		slots = defaultSlots
	}
	semaphore := make(chan struct{}, slots)

	for _, track := range tracks {
		outputFile := filepath.Join(coordinator.Pipeline.Output, track.Path().Final(coordinator.Pipeline.Format))
		if !coordinator.Overwrite {
			if _, err := os.Stat(outputFile); err == nil {
				// skips still count towards the overall progress,
				// or batches with skips would never reach the total
				mutex.Lock()
				results[track.ID] = Outcome{Status: StatusSkipped, Path: outputFile}
				completed++
				coordinator.Pipeline.Reporter.UpdateOverall(completed, len(tracks))
				mutex.Unlock()
				coordinator.Pipeline.Reporter.Log(subject(track, "already installed"))
				continue
			}
		}

		waitGroup.Add(1)
		go func(track *entity.Track) {
			defer waitGroup.Done()

			// the slot covers the whole fetch+convert+tag
			// critical section, not just the network fetch
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcome := coordinator.Pipeline.Process(track)

			mutex.Lock()
			results[track.ID] = outcome
			completed++
			coordinator.Pipeline.Reporter.UpdateOverall(completed, len(tracks))
			mutex.Unlock()
		}(track)
	}

	waitGroup.Wait()
	return results
}
