// Package main is a developer utility that runs raw Subsonic reply JSON
// through the Resonata adaptation layer and reports what it decoded. It is
// handy for checking captured server replies against the domain model
// without starting the player.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/resonata-player/resonata/internal/subsonic"
	"github.com/resonata-player/resonata/internal/version"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Msgf("%s reply inspector", version.GetInfo().String())

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	failed := false
	for _, name := range files {
		if err := dump(name); err != nil {
			failed = true
			var srvErr *subsonic.ServerError
			if errors.As(err, &srvErr) {
				log.Error().Str("file", name).Int("code", srvErr.Code).Str("message", srvErr.Message).Msg("Server reported failure")
				continue
			}
			log.Error().Err(err).Str("file", name).Msg("Decode failed")
		}
	}
	if failed {
		os.Exit(1)
	}
}

// dump decodes one reply document and logs a summary of the result.
func dump(name string) error {
	data, err := read(name)
	if err != nil {
		return err
	}

	resp, err := subsonic.DecodeReplyBytes(data)
	if err != nil {
		return err
	}

	slot, detail := summarize(resp)
	log.Info().Str("file", name).Str("slot", slot).Str("contents", detail).Msg("Decoded reply")
	return nil
}

func read(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// summarize names the populated envelope slot and a one-line description
// of what it holds.
func summarize(r *subsonic.Response) (string, string) {
	switch {
	case r.Artists != nil:
		n := 0
		for _, idx := range r.Artists.Index {
			n += len(idx.Artists)
		}
		return "artists", fmt.Sprintf("%d artists in %d groups", n, len(r.Artists.Index))
	case r.Artist != nil:
		return "artist", fmt.Sprintf("%s (%d albums)", r.Artist.Name, r.Artist.AlbumCount)
	case r.ArtistInfo != nil:
		return "artistInfo2", fmt.Sprintf("%d similar artists", len(r.ArtistInfo.SimilarArtists))
	case r.Albums != nil:
		return "albumList2", fmt.Sprintf("%d albums", len(r.Albums.Albums))
	case r.Album != nil:
		return "album", fmt.Sprintf("%s (%d songs)", r.Album.Name, r.Album.SongCount)
	case r.Directory != nil:
		return "directory", fmt.Sprintf("%s (%d children)", r.Directory.Name, len(r.Directory.Children))
	case r.Genres != nil:
		return "genres", fmt.Sprintf("%d genres", len(r.Genres.Genres))
	case r.Indexes != nil:
		n := 0
		for _, idx := range r.Indexes.Index {
			n += len(idx.Artists)
		}
		return "indexes", fmt.Sprintf("%d artists in %d groups", n, len(r.Indexes.Index))
	case r.Playlist != nil:
		return "playlist", fmt.Sprintf("%s (%d songs, %s)", r.Playlist.Name, r.Playlist.SongCount, r.Playlist.Duration)
	case r.Playlists != nil:
		return "playlists", fmt.Sprintf("%d playlists", len(r.Playlists.Playlists))
	case r.PlayQueue != nil:
		return "playQueue", fmt.Sprintf("%d songs at %s", len(r.PlayQueue.Songs), r.PlayQueue.Position)
	case r.Song != nil:
		return "song", r.Song.Title
	case r.SearchResult != nil:
		return "searchResult3", fmt.Sprintf("%d artists, %d albums, %d songs",
			len(r.SearchResult.Artists), len(r.SearchResult.Albums), len(r.SearchResult.Songs))
	default:
		return "none", "empty acknowledgement"
	}
}
