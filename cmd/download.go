package cmd

import (
	"errors"
	"fmt"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/streambinder/tracksmith/converter"
	"github.com/streambinder/tracksmith/downloader"
	"github.com/streambinder/tracksmith/entity"
	"github.com/streambinder/tracksmith/entity/playlist"
	"github.com/streambinder/tracksmith/lyrics"
	"github.com/streambinder/tracksmith/pipeline"
	"github.com/streambinder/tracksmith/provider"
	"github.com/streambinder/tracksmith/spotify"
	"github.com/streambinder/tracksmith/util"
	"github.com/streambinder/tracksmith/util/anchor"
)

var tui = anchor.New(anchor.Red)

func init() {
	cmdRoot.AddCommand(cmdDownload())
}

func cmdDownload() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "download",
		Short:        "Download and tag tracks, albums and playlists",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				output      = util.ErrWrap(xdg.UserDirs.Music)(cmd.Flags().GetString("output"))
				format      = util.ErrWrap(entity.DefaultFormat)(cmd.Flags().GetString("format"))
				threads     = util.ErrWrap(4)(cmd.Flags().GetInt("threads"))
				m3uPath     = util.ErrWrap("")(cmd.Flags().GetString("m3u"))
				overwrite   = util.ErrWrap(false)(cmd.Flags().GetBool("overwrite"))
				withLyrics  = util.ErrWrap(true)(cmd.Flags().GetBool("lyrics"))
				trackIDs    = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("track"))
				albumIDs    = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("album"))
				playlistIDs = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("playlist"))
				verbose     = util.ErrWrap(false)(cmd.Flags().GetBool("verbose"))
			)

			if len(trackIDs)+len(albumIDs)+len(playlistIDs) == 0 {
				return errors.New("no tracks, albums or playlists supplied")
			}

			// some environments ship no XDG music directory at all
			output = util.Fallback(output, ".")

			if err := downloader.Ensure(); err != nil {
				return err
			}
			if format != "m4a" {
				if err := converter.Ensure(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			tui.Lot("auth").Printf("authenticating")
			client, err := spotify.Authenticate(ctx)
			if err != nil {
				tui.Lot("auth").Close("failed")
				return err
			}
			tui.Lot("auth").Close()

			var tracks []*entity.Track
			for _, id := range trackIDs {
				tui.Lot("fetch").Printf("track %s", id)
				track, err := client.Track(ctx, id)
				if err != nil {
					return err
				}
				tracks = append(tracks, track)
			}
			for _, id := range albumIDs {
				tui.Lot("fetch").Printf("album %s", id)
				albumTracks, err := client.Album(ctx, id)
				if err != nil {
					return err
				}
				tracks = append(tracks, albumTracks...)
			}
			for _, id := range playlistIDs {
				tui.Lot("fetch").Printf("playlist %s", id)
				_, playlistTracks, err := client.Playlist(ctx, id)
				if err != nil {
					return err
				}
				tracks = append(tracks, playlistTracks...)
			}
			tui.Lot("fetch").Close(fmt.Sprintf("%d tracks", len(tracks)))

			var m3u *playlist.M3U
			if m3uPath != "" {
				m3u, err = playlist.NewM3U(m3uPath)
				if err != nil {
					return err
				}
				defer m3u.Close()
			}

			pipe := pipeline.New(
				provider.NewYouTube(),
				reporter{verbose: verbose},
				output, format)
			if withLyrics {
				pipe.Lyrics = lyrics.Search
			}
			pipe.M3U = m3u

			coordinator := pipeline.Coordinator{
				Pipeline:  pipe,
				Slots:     threads,
				Overwrite: overwrite,
			}
			result := coordinator.RunBatch(tracks)

			tui.Printf("%d downloaded, %d skipped, %d not found, %d failed",
				result.Count(pipeline.StatusSuccess),
				result.Count(pipeline.StatusSkipped),
				result.Count(pipeline.StatusNotFound),
				result.Count(pipeline.StatusFailed))

			if failed := result.Count(pipeline.StatusFailed); failed > 0 {
				return fmt.Errorf("%d tracks failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", xdg.UserDirs.Music, "Output directory")
	cmd.Flags().StringP("format", "f", entity.DefaultFormat, "Output audio format")
	cmd.Flags().Int("threads", 4, "Concurrent download slots")
	cmd.Flags().String("m3u", "", "Append downloaded tracks to the given M3U playlist file")
	cmd.Flags().Bool("overwrite", false, "Re-download tracks already installed")
	cmd.Flags().BoolP("lyrics", "y", true, "Fetch and embed lyrics")
	cmd.Flags().StringArrayP("track", "t", []string{}, "Track to download")
	cmd.Flags().StringArrayP("album", "a", []string{}, "Album to download")
	cmd.Flags().StringArrayP("playlist", "p", []string{}, "Playlist to download")
	return cmd
}

// reporter adapts the anchor TUI to the
// pipeline progress contract
type reporter struct {
	verbose bool
}

func (reporter reporter) Debug(message string) {
	if reporter.verbose {
		tui.Printf("debug: %s", message)
	}
}

func (reporter reporter) Log(message string) {
	tui.Printf("%s", message)
}

func (reporter reporter) Warn(message string) {
	tui.AnchorPrintf("warning: %s", message)
}

func (reporter reporter) Error(message string) {
	tui.AnchorPrintf("%s", message)
}

func (reporter reporter) UpdateOverall(completed, total int) {
	tui.Lot("progress").Printf("%d/%d tracks", completed, total)
}
