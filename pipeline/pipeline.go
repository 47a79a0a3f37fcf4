// Package pipeline drives each track through the
// resolve, fetch, convert, tag sequence, isolating
// failures so that one track never takes down its
// siblings.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arunsworld/nursery"

	"github.com/streambinder/tracksmith/converter"
	"github.com/streambinder/tracksmith/downloader"
	"github.com/streambinder/tracksmith/entity"
	"github.com/streambinder/tracksmith/entity/playlist"
	"github.com/streambinder/tracksmith/processor"
	"github.com/streambinder/tracksmith/provider"
	"github.com/streambinder/tracksmith/util"
)

// yt-dlp remuxes bestaudio into this container without
// re-encoding: conversion only happens when the requested
// output format differs
const sourceFormat = "m4a"

type Status int

const (
	StatusSuccess Status = iota
	StatusNotFound
	StatusFailed
	StatusSkipped
)

func (status Status) String() string {
	switch status {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one
// track's pipeline run
type Outcome struct {
	Status Status
	Path   string
	Err    error
}

type (
	Resolver      func(track *entity.Track) (*provider.Resolution, error)
	Fetcher       func(url, path string, hook downloader.Hook) error
	Converter     func(input, output string) (success bool, diagnostic string)
	LyricsFetcher func(track *entity.Track) (string, error)
	ArtworkFetch  func(track *entity.Track) error
	Embedder      func(path string, track *entity.Track, format, lyrics string) error
)

// Pipeline carries the collaborators and settings shared
// by every per-track run. Collaborators are plain function
// values, so tests swap them for stubs.
type Pipeline struct {
	Resolve  Resolver
	Fetch    Fetcher
	Convert  Converter
	Lyrics   LyricsFetcher
	Artwork  ArtworkFetch
	Embed    Embedder
	Reporter Reporter
	Output   string // output directory
	Format   string // output format extension
	M3U      *playlist.M3U
}

// New assembles a pipeline over the default collaborators:
// the staged resolver on the given searcher, yt-dlp fetch,
// ffmpeg conversion, the lyrics chain, format-keyed embedding
func New(searcher provider.Searcher, reporter Reporter, output, outputFormat string) *Pipeline {
	if reporter == nil {
		reporter = Silent{}
	}
	return &Pipeline{
		Resolve:  provider.NewResolver(searcher).Resolve,
		Fetch:    downloader.YouTubeDl,
		Convert:  converter.Convert,
		Artwork:  FetchArtwork,
		Embed:    processor.Embed,
		Reporter: reporter,
		Output:   output,
		Format:   outputFormat,
	}
}

// FetchArtwork downloads and normalizes the track cover,
// attaching the bytes to the track for later embedding
func FetchArtwork(track *entity.Track) error {
	if track.Artwork.URL == "" {
		return nil
	}

	data := make(chan []byte, 1)
	defer close(data)
	if err := downloader.Download(track.Artwork.URL, track.Path().Artwork(), processor.Artwork{}, data); err != nil {
		return err
	}
	track.Artwork.Data = <-data
	return nil
}

// Process runs one track through the pipeline, always
// returning a well-formed outcome: errors and panics stop
// at this boundary instead of propagating to sibling runs
func (pipeline *Pipeline) Process(track *entity.Track) (outcome Outcome) {
	tracker := NewTracker(pipeline.Reporter, track)

	defer func() {
		if cause := recover(); cause != nil {
			err := fmt.Errorf("pipeline panic: %v", cause)
			tracker.NotifyError("", err)
			outcome = Outcome{Status: StatusFailed, Err: err}
		}
	}()

	url := track.UpstreamURL
	if url == "" {
		resolution, err := pipeline.Resolve(track)
		if err != nil {
			wrapped := &LookupError{err}
			tracker.NotifyError(err.Error(), wrapped)
			return Outcome{Status: StatusFailed, Err: wrapped}
		}
		if resolution == nil {
			pipeline.Reporter.Log(subject(track, "not found"))
			return Outcome{Status: StatusNotFound}
		}
		url = resolution.URL
		track.UpstreamURL = url
		pipeline.Reporter.Debug(fmt.Sprintf("%s resolved to %s (score %.2f)", track.Title, url, resolution.Score))
	}

	tempFile := track.Path().Download(sourceFormat)
	if err := nursery.RunConcurrently(
		func(_ context.Context, errs chan error) {
			if err := pipeline.Fetch(url, tempFile, tracker.Hook); err != nil {
				errs <- err
			}
		},
		func(_ context.Context, _ chan error) {
			// a missing artwork only degrades tagging,
			// it never fails the item
			if pipeline.Artwork == nil {
				return
			}
			if err := pipeline.Artwork(track); err != nil {
				pipeline.Reporter.Warn(subject(track, "artwork: "+err.Error()))
			}
		},
	); err != nil {
		wrapped := &FetchError{err}
		tracker.NotifyError(err.Error(), wrapped)
		util.ErrSuppress(os.Remove(tempFile))
		return Outcome{Status: StatusFailed, Err: wrapped}
	}
	tracker.NotifyDownloadComplete()

	outputFile := filepath.Join(pipeline.Output, track.Path().Final(pipeline.Format))
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o755); err != nil {
		wrapped := &FetchError{err}
		tracker.NotifyError("", wrapped)
		util.ErrSuppress(os.Remove(tempFile))
		return Outcome{Status: StatusFailed, Err: wrapped}
	}

	if pipeline.Format == sourceFormat {
		// already in the right container: plain move, no transcode
		if err := util.FileMoveOrCopy(tempFile, outputFile, true); err != nil {
			wrapped := &FetchError{err}
			tracker.NotifyError("", wrapped)
			util.ErrSuppress(os.Remove(tempFile))
			return Outcome{Status: StatusFailed, Err: wrapped}
		}
	} else {
		success, diagnostic := pipeline.Convert(tempFile, outputFile)
		util.ErrSuppress(os.Remove(tempFile))
		if !success {
			report, err := converter.ErrorReport(diagnostic)
			if err != nil {
				pipeline.Reporter.Warn("cannot persist conversion diagnostic: " + err.Error())
			}
			wrapped := &ConversionError{Report: report}
			tracker.NotifyError(diagnostic, wrapped)
			util.ErrSuppress(os.Remove(outputFile))
			return Outcome{Status: StatusFailed, Err: wrapped}
		}
	}
	tracker.NotifyConversionComplete()

	var lyricsText string
	if pipeline.Lyrics != nil {
		text, err := pipeline.Lyrics(track)
		if err != nil {
			pipeline.Reporter.Debug(subject(track, "no lyrics: "+err.Error()))
		} else {
			lyricsText = text
		}
	}
	track.Lyrics = lyricsText

	if err := pipeline.Embed(outputFile, track, pipeline.Format, lyricsText); err != nil {
		wrapped := &EmbedError{err}
		tracker.NotifyError(err.Error(), wrapped)
		util.ErrSuppress(os.Remove(outputFile))
		return Outcome{Status: StatusFailed, Err: wrapped}
	}

	if pipeline.M3U != nil {
		if err := pipeline.M3U.Add(outputFile); err != nil {
			pipeline.Reporter.Warn(subject(track, "playlist append: "+err.Error()))
		}
	}

	tracker.NotifyComplete()
	return Outcome{Status: StatusSuccess, Path: outputFile}
}
