package subsonic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// slot ties one envelope attribute to the decoder that fills it in.
type slot struct {
	attr   string
	decode func(*Response, Record) error
}

// responseSlots lists every top-level reply shape the dispatcher knows.
// The protocol carries no explicit discriminator; the wire key that is
// present tells us what the reply is.
var responseSlots = []slot{
	{"artists", func(r *Response, rec Record) error {
		v, err := DecodeArtists(rec)
		if err != nil {
			return err
		}
		r.Artists = &v
		return nil
	}},
	{"artist", func(r *Response, rec Record) error {
		v, err := DecodeArtist(rec)
		if err != nil {
			return err
		}
		r.Artist = &v
		return nil
	}},
	{"artist_info", func(r *Response, rec Record) error {
		v, err := DecodeArtistInfo(rec)
		if err != nil {
			return err
		}
		r.ArtistInfo = &v
		return nil
	}},
	{"albums", func(r *Response, rec Record) error {
		v, err := DecodeAlbumList(rec)
		if err != nil {
			return err
		}
		r.Albums = &v
		return nil
	}},
	{"album", func(r *Response, rec Record) error {
		v, err := DecodeAlbum(rec)
		if err != nil {
			return err
		}
		r.Album = &v
		return nil
	}},
	{"directory", func(r *Response, rec Record) error {
		v, err := DecodeDirectory(rec)
		if err != nil {
			return err
		}
		r.Directory = &v
		return nil
	}},
	{"genres", func(r *Response, rec Record) error {
		v, err := DecodeGenreList(rec)
		if err != nil {
			return err
		}
		r.Genres = &v
		return nil
	}},
	{"indexes", func(r *Response, rec Record) error {
		v, err := DecodeIndexes(rec)
		if err != nil {
			return err
		}
		r.Indexes = &v
		return nil
	}},
	{"playlist", func(r *Response, rec Record) error {
		v, err := DecodePlaylistWithSongs(rec)
		if err != nil {
			return err
		}
		r.Playlist = &v
		return nil
	}},
	{"playlists", func(r *Response, rec Record) error {
		v, err := DecodePlaylists(rec)
		if err != nil {
			return err
		}
		r.Playlists = &v
		return nil
	}},
	{"play_queue", func(r *Response, rec Record) error {
		v, err := DecodePlayQueue(rec)
		if err != nil {
			return err
		}
		r.PlayQueue = &v
		return nil
	}},
	{"song", func(r *Response, rec Record) error {
		v, err := DecodeSong(rec)
		if err != nil {
			return err
		}
		r.Song = &v
		return nil
	}},
	{"search_result", func(r *Response, rec Record) error {
		v, err := DecodeSearchResult(rec)
		if err != nil {
			return err
		}
		r.SearchResult = &v
		return nil
	}},
	{"error", func(r *Response, rec Record) error {
		v, err := DecodeServerError(rec)
		if err != nil {
			return err
		}
		r.Error = &v
		return nil
	}},
}

// DecodeResponse dispatches a raw reply to the decoder for whichever slot
// it populates. Bookkeeping keys beside the payload (status, version and
// friends) are ignored; a reply populating more than one slot is a
// protocol violation and fails with ErrAmbiguousEnvelope. A reply with no
// payload slot at all (a bare acknowledgement) decodes to an empty
// Response.
func DecodeResponse(rec Record) (*Response, error) {
	var populated []string
	for _, s := range responseSlots {
		key := responseFields.wireKey(s.attr)
		if v, ok := rec[key]; ok && v != nil {
			populated = append(populated, key)
		}
	}
	if len(populated) > 1 {
		return nil, &DecodeError{
			Entity: "Response",
			Err:    fmt.Errorf("%w: %s", ErrAmbiguousEnvelope, strings.Join(populated, ", ")),
		}
	}

	var resp Response
	if len(populated) == 0 {
		log.Debug().Msg("reply carries no payload slot")
		return &resp, nil
	}

	key := populated[0]
	for _, s := range responseSlots {
		if responseFields.wireKey(s.attr) != key {
			continue
		}
		sub, ok := rec[key].(map[string]any)
		if !ok {
			return nil, &DecodeError{
				Entity: "Response",
				Field:  key,
				Err:    fmt.Errorf("%w: expected object, got %T", ErrTypeMismatch, rec[key]),
			}
		}
		if err := s.decode(&resp, sub); err != nil {
			return nil, err
		}
		log.Debug().Str("slot", key).Msg("decoded reply")
		return &resp, nil
	}
	return &resp, nil
}

// EncodeResponse rebuilds the wire form of a reply from whichever slot is
// populated, for callers that persist raw replies.
func EncodeResponse(r *Response) Record {
	e := newEnc(responseFields)
	switch {
	case r.Artists != nil:
		e.set("artists", EncodeArtists(*r.Artists))
	case r.Artist != nil:
		e.set("artist", EncodeArtist(*r.Artist))
	case r.ArtistInfo != nil:
		e.set("artist_info", EncodeArtistInfo(*r.ArtistInfo))
	case r.Albums != nil:
		e.set("albums", EncodeAlbumList(*r.Albums))
	case r.Album != nil:
		e.set("album", EncodeAlbum(*r.Album))
	case r.Directory != nil:
		e.set("directory", EncodeDirectory(*r.Directory))
	case r.Genres != nil:
		e.set("genres", EncodeGenreList(*r.Genres))
	case r.Indexes != nil:
		e.set("indexes", EncodeIndexes(*r.Indexes))
	case r.Playlist != nil:
		e.set("playlist", EncodePlaylistWithSongs(*r.Playlist))
	case r.Playlists != nil:
		e.set("playlists", EncodePlaylists(*r.Playlists))
	case r.PlayQueue != nil:
		e.set("play_queue", EncodePlayQueue(*r.PlayQueue))
	case r.Song != nil:
		e.set("song", EncodeSong(*r.Song))
	case r.SearchResult != nil:
		e.set("search_result", EncodeSearchResult(*r.SearchResult))
	case r.Error != nil:
		e.set("error", Record{"code": r.Error.Code, "message": r.Error.Message})
	}
	return e.rec
}

// DecodeReplyBytes decodes one raw reply document. The server wraps every
// payload in a "subsonic-response" object; the wrapper is peeled off here
// before envelope dispatch. A reply carrying the protocol's error slot
// returns a *ServerError, distinguishing a failed reply from a malformed
// one.
func DecodeReplyBytes(data []byte) (*Response, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}
	rec := root
	if inner, ok := root["subsonic-response"].(map[string]any); ok {
		rec = inner
	}
	resp, err := DecodeResponse(rec)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp, nil
}
