package pipeline

import (
	"github.com/streambinder/tracksmith/entity"
	"github.com/streambinder/tracksmith/util"
)

// Reporter receives per-track lifecycle text plus
// aggregate progress updates
type Reporter interface {
	Debug(message string)
	Log(message string)
	Warn(message string)
	Error(message string)
	UpdateOverall(completed, total int)
}

// Silent drops every message: the default
// reporter for tests and library embedding
type Silent struct{}

func (Silent) Debug(string)           {}
func (Silent) Log(string)             {}
func (Silent) Warn(string)            {}
func (Silent) Error(string)           {}
func (Silent) UpdateOverall(int, int) {}

// Tracker follows one track through its pipeline run,
// translating lifecycle milestones into reporter calls
type Tracker struct {
	reporter Reporter
	track    *entity.Track
	progress int
	total    int64
}

func NewTracker(reporter Reporter, track *entity.Track) *Tracker {
	return &Tracker{reporter: reporter, track: track}
}

// Hook feeds transfer counters into the tracker: the
// download stage accounts for the first 90 points
func (tracker *Tracker) Hook(downloadedBytes, totalBytes int64) {
	if totalBytes > 0 {
		tracker.progress = int(float64(downloadedBytes) / float64(totalBytes) * 90)
		tracker.total = totalBytes
	}
}

func (tracker *Tracker) NotifyDownloadComplete() {
	tracker.progress = 90
	if tracker.total > 0 {
		tracker.reporter.Debug(subject(tracker.track, "fetched "+util.HumanizeBytes(int(tracker.total))))
	}
	tracker.update("converting")
}

func (tracker *Tracker) NotifyConversionComplete() {
	tracker.progress = 95
	tracker.update("tagging")
}

func (tracker *Tracker) NotifyComplete() {
	tracker.progress = 100
	tracker.update("done")
}

// NotifyError reports a failure: full detail on the debug
// channel, the short message on the error one
func (tracker *Tracker) NotifyError(detail string, err error) {
	tracker.update("error")
	if detail != "" {
		tracker.reporter.Debug(util.Excerpt(detail, 200))
	}
	tracker.reporter.Error(subject(tracker.track, err.Error()))
}

func (tracker *Tracker) update(status string) {
	tracker.reporter.Log(subject(tracker.track, status))
}

func subject(track *entity.Track, status string) string {
	if len(track.Artists) == 0 {
		return track.Title + ": " + status
	}
	return track.Title + " by " + track.Artists[0] + ": " + status
}
