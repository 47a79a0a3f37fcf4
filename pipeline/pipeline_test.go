package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streambinder/tracksmith/downloader"
	"github.com/streambinder/tracksmith/entity"
	"github.com/streambinder/tracksmith/entity/playlist"
	"github.com/streambinder/tracksmith/provider"
)

type recordReporter struct {
	mutex    sync.Mutex
	logs     []string
	warnings []string
	failures []string
	overall  [][2]int
}

func (reporter *recordReporter) Debug(string) {}

func (reporter *recordReporter) Log(message string) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	reporter.logs = append(reporter.logs, message)
}

func (reporter *recordReporter) Warn(message string) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	reporter.warnings = append(reporter.warnings, message)
}

func (reporter *recordReporter) Error(message string) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	reporter.failures = append(reporter.failures, message)
}

func (reporter *recordReporter) UpdateOverall(completed, total int) {
	reporter.mutex.Lock()
	defer reporter.mutex.Unlock()
	reporter.overall = append(reporter.overall, [2]int{completed, total})
}

func testTrack(id, title string) *entity.Track {
	return &entity.Track{
		ID:       id,
		Title:    title,
		Artists:  []string{"Artist"},
		Album:    "Album",
		Duration: 200,
	}
}

func testPipeline(output string) *Pipeline {
	return &Pipeline{
		Resolve: func(track *entity.Track) (*provider.Resolution, error) {
			return &provider.Resolution{URL: "https://youtube.com/watch?v=" + track.ID, Score: 100}, nil
		},
		Fetch: func(_, path string, hook downloader.Hook) error {
			hook(50, 100)
			return os.WriteFile(path, []byte("audio"), 0o644)
		},
		Convert: func(input, output string) (bool, string) {
			data, err := os.ReadFile(input)
			if err != nil {
				return false, err.Error()
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return false, err.Error()
			}
			return true, ""
		},
		Embed: func(string, *entity.Track, string, string) error {
			return nil
		},
		Reporter: Silent{},
		Output:   output,
		Format:   "mp3",
	}
}

func TestProcess(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Lyrics = func(*entity.Track) (string, error) {
		return "just a lyrics line", nil
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Nil(t, outcome.Err)
	assert.FileExists(t, outcome.Path)
	assert.Equal(t, "just a lyrics line", track.Lyrics)
	assert.Equal(t, "https://youtube.com/watch?v=123", track.UpstreamURL)
	assert.NoFileExists(t, track.Path().Download("m4a"))
}

func TestProcessPassthrough(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Format = "m4a"
	pipeline.Convert = func(string, string) (bool, string) {
		t.Error("no conversion expected for the source format")
		return false, ""
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.True(t, strings.HasSuffix(outcome.Path, ".m4a"))
	assert.FileExists(t, outcome.Path)
}

func TestProcessPresolved(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	track.UpstreamURL = "https://youtube.com/watch?v=known"
	pipeline.Resolve = func(*entity.Track) (*provider.Resolution, error) {
		t.Error("no resolution expected for a presolved track")
		return nil, nil
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusSuccess, outcome.Status)
}

func TestProcessNotFound(t *testing.T) {
	pipeline := testPipeline(t.TempDir())
	pipeline.Resolve = func(*entity.Track) (*provider.Resolution, error) {
		return nil, nil
	}

	outcome := pipeline.Process(testTrack("123", "Title"))
	assert.Equal(t, StatusNotFound, outcome.Status)
	assert.Nil(t, outcome.Err)
}

func TestProcessLookupFailure(t *testing.T) {
	pipeline := testPipeline(t.TempDir())
	pipeline.Resolve = func(*entity.Track) (*provider.Resolution, error) {
		return nil, errors.New("ko")
	}

	outcome := pipeline.Process(testTrack("123", "Title"))
	assert.Equal(t, StatusFailed, outcome.Status)

	var lookupError *LookupError
	require.ErrorAs(t, outcome.Err, &lookupError)
	assert.EqualError(t, lookupError.Err, "ko")
}

func TestProcessFetchFailure(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Fetch = func(string, string, downloader.Hook) error {
		return errors.New("ko")
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusFailed, outcome.Status)

	var fetchError *FetchError
	assert.ErrorAs(t, outcome.Err, &fetchError)
	assert.NoFileExists(t, filepath.Join(pipeline.Output, track.Path().Final(pipeline.Format)))
}

func TestProcessConversionFailure(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Convert = func(string, string) (bool, string) {
		return false, "encoder exploded"
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusFailed, outcome.Status)

	var conversionError *ConversionError
	require.ErrorAs(t, outcome.Err, &conversionError)
	require.NotEmpty(t, conversionError.Report)
	defer os.Remove(conversionError.Report)

	diagnostic, err := os.ReadFile(conversionError.Report)
	assert.Nil(t, err)
	assert.Contains(t, string(diagnostic), "encoder exploded")
	assert.NoFileExists(t, filepath.Join(pipeline.Output, track.Path().Final(pipeline.Format)))
}

func TestProcessEmbedFailure(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Embed = func(string, *entity.Track, string, string) error {
		return errors.New("ko")
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusFailed, outcome.Status)

	var embedError *EmbedError
	assert.ErrorAs(t, outcome.Err, &embedError)
	assert.NoFileExists(t, filepath.Join(pipeline.Output, track.Path().Final(pipeline.Format)))
}

func TestProcessLyricsFailure(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Lyrics = func(*entity.Track) (string, error) {
		return "", errors.New("ko")
	}

	// lyrics are decorative: the item still succeeds
	outcome := pipeline.Process(track)
	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Empty(t, track.Lyrics)
}

func TestProcessArtworkFailure(t *testing.T) {
	var (
		reporter = &recordReporter{}
		pipeline = testPipeline(t.TempDir())
		track    = testTrack("123", "Title")
	)
	pipeline.Reporter = reporter
	pipeline.Artwork = func(*entity.Track) error {
		return errors.New("ko")
	}

	outcome := pipeline.Process(track)
	assert.Equal(t, StatusSuccess, outcome.Status)
	require.Len(t, reporter.warnings, 1)
	assert.Contains(t, reporter.warnings[0], "artwork")
}

func TestProcessPanic(t *testing.T) {
	pipeline := testPipeline(t.TempDir())
	pipeline.Resolve = func(*entity.Track) (*provider.Resolution, error) {
		panic("boom")
	}

	outcome := pipeline.Process(testTrack("123", "Title"))
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorContains(t, outcome.Err, "boom")
}

func TestProcessPlaylistAppend(t *testing.T) {
	var (
		pipeline = testPipeline(t.TempDir())
		m3uPath  = filepath.Join(t.TempDir(), "playlist.m3u")
	)
	m3u, err := playlist.NewM3U(m3uPath)
	require.Nil(t, err)
	defer m3u.Close()
	pipeline.M3U = m3u

	outcome := pipeline.Process(testTrack("123", "Title"))
	require.Equal(t, StatusSuccess, outcome.Status)

	content, err := os.ReadFile(m3uPath)
	require.Nil(t, err)
	assert.Contains(t, string(content), outcome.Path)
}
