package subsonic

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func mustRecord(t *testing.T, raw string) Record {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return rec
}

func TestDecodeSong(t *testing.T) {
	t.Run("minimal song defaults", func(t *testing.T) {
		s, err := DecodeSong(mustRecord(t, `{"id": "1", "name": "Intro"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != "1" || s.Title != "Intro" {
			t.Errorf("got id=%q title=%q", s.ID, s.Title)
		}
		if s.ParentID != RootID {
			t.Errorf("ParentID = %q, want root sentinel", s.ParentID)
		}
		if s.Artist != nil || s.Album != nil || s.Genre != nil {
			t.Errorf("expected absent references, got artist=%v album=%v genre=%v", s.Artist, s.Album, s.Genre)
		}
	})

	t.Run("full song", func(t *testing.T) {
		s, err := DecodeSong(mustRecord(t, `{
			"id": "301",
			"name": "So What",
			"path": "Miles Davis/Kind of Blue/01 So What.flac",
			"parent": "300",
			"duration": 562,
			"artist": "Miles Davis",
			"artistId": "42",
			"album": "Kind of Blue",
			"albumId": "300",
			"genre": "Jazz",
			"track": 1,
			"discNumber": 1,
			"year": 1959,
			"coverArt": "al-300",
			"userRating": 5,
			"starred": "2020-05-04T10:11:12.000000+0000"
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ParentID != "300" {
			t.Errorf("ParentID = %q", s.ParentID)
		}
		if s.Duration != 562*time.Second {
			t.Errorf("Duration = %v", s.Duration)
		}
		if s.Artist == nil || s.Artist.ID != "42" || s.Artist.Name != "Miles Davis" {
			t.Errorf("Artist stub = %+v", s.Artist)
		}
		if s.Album == nil || s.Album.ID != "300" || s.Album.Name != "Kind of Blue" {
			t.Errorf("Album stub = %+v", s.Album)
		}
		if s.Genre == nil || s.Genre.Name != "Jazz" {
			t.Errorf("Genre stub = %+v", s.Genre)
		}
		if s.Starred == nil {
			t.Error("Starred not decoded")
		}
	})

	t.Run("root song has no parent", func(t *testing.T) {
		s, err := DecodeSong(mustRecord(t, `{"id": "root", "name": "weird"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ParentID != "" {
			t.Errorf("root ParentID = %q, want empty", s.ParentID)
		}
	})

	t.Run("name with no id yields no reference", func(t *testing.T) {
		s, err := DecodeSong(mustRecord(t, `{"id": "1", "name": "x", "artist": "Somebody"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Artist != nil {
			t.Errorf("Artist = %+v, want nil without artistId", s.Artist)
		}
	})

	t.Run("id with no name yields id-only stub", func(t *testing.T) {
		s, err := DecodeSong(mustRecord(t, `{"id": "1", "name": "x", "artistId": "9"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Artist == nil || s.Artist.ID != "9" || s.Artist.Name != "" {
			t.Errorf("Artist = %+v, want id-only stub", s.Artist)
		}
	})

	t.Run("missing title is a hard failure", func(t *testing.T) {
		_, err := DecodeSong(mustRecord(t, `{"id": "1"}`))
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DecodeError, got %T", err)
		}
		if de.Entity != "Song" || de.Field != "name" {
			t.Errorf("error names %s.%s, want Song.name", de.Entity, de.Field)
		}
	})

	t.Run("mistyped duration is a hard failure", func(t *testing.T) {
		_, err := DecodeSong(mustRecord(t, `{"id": "1", "name": "x", "duration": "long"}`))
		if !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("expected ErrTypeMismatch, got %v", err)
		}
	})
}

func TestDecodeAlbum(t *testing.T) {
	t.Run("artist reference from inline pair", func(t *testing.T) {
		al, err := DecodeAlbum(mustRecord(t, `{"id": "300", "name": "Kind of Blue", "artistId": "42", "artist": "Foo"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if al.Artist == nil || al.Artist.ID != "42" || al.Artist.Name != "Foo" {
			t.Errorf("Artist = %+v, want {42 Foo}", al.Artist)
		}
	})

	t.Run("derived aggregates from songs", func(t *testing.T) {
		al, err := DecodeAlbum(mustRecord(t, `{
			"id": "300",
			"name": "Kind of Blue",
			"genre": "Jazz",
			"song": [
				{"id": "301", "name": "So What", "duration": 562},
				{"id": "302", "name": "Freddie Freeloader", "duration": 586}
			]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if al.SongCount != 2 {
			t.Errorf("SongCount = %d, want derived 2", al.SongCount)
		}
		if al.Duration != 1148*time.Second {
			t.Errorf("Duration = %v, want derived 1148s", al.Duration)
		}
		if al.Genre == nil || al.Genre.Name != "Jazz" {
			t.Errorf("Genre = %+v", al.Genre)
		}
		if len(al.Songs) != 2 || al.Songs[0].ParentID != RootID {
			t.Errorf("songs not normalized before aggregation: %+v", al.Songs)
		}
	})

	t.Run("explicit wire aggregates win", func(t *testing.T) {
		al, err := DecodeAlbum(mustRecord(t, `{
			"id": "300",
			"name": "Kind of Blue",
			"songCount": 9,
			"duration": 3330,
			"song": [{"id": "301", "name": "So What", "duration": 562}]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if al.SongCount != 9 {
			t.Errorf("SongCount = %d, want explicit 9", al.SongCount)
		}
		if al.Duration != 3330*time.Second {
			t.Errorf("Duration = %v, want explicit 3330s", al.Duration)
		}
	})

	t.Run("missing id is a hard failure", func(t *testing.T) {
		_, err := DecodeAlbum(mustRecord(t, `{"name": "Kind of Blue"}`))
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("bad embedded song aborts the album", func(t *testing.T) {
		_, err := DecodeAlbum(mustRecord(t, `{
			"id": "300",
			"name": "Kind of Blue",
			"song": [{"id": "301"}]
		}`))
		var de *DecodeError
		if !errors.As(err, &de) || de.Entity != "Song" {
			t.Fatalf("expected Song decode error to propagate, got %v", err)
		}
	})
}

func TestDecodeArtist(t *testing.T) {
	t.Run("identifier synthesis is deterministic", func(t *testing.T) {
		first, err := DecodeArtist(mustRecord(t, `{"name": "Unknown Artist"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := DecodeArtist(mustRecord(t, `{"name": "Unknown Artist"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID == "" {
			t.Fatal("no identifier synthesized")
		}
		if first.ID != second.ID {
			t.Errorf("synthesized ids differ: %q vs %q", first.ID, second.ID)
		}

		other, err := DecodeArtist(mustRecord(t, `{"name": "Someone Else"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if other.ID == first.ID {
			t.Error("distinct names synthesized the same id")
		}
	})

	t.Run("server id wins over synthesis", func(t *testing.T) {
		a, err := DecodeArtist(mustRecord(t, `{"id": "42", "name": "Miles Davis"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ID != "42" {
			t.Errorf("ID = %q, want server-assigned 42", a.ID)
		}
	})

	t.Run("album count falls back to embedded albums", func(t *testing.T) {
		a, err := DecodeArtist(mustRecord(t, `{
			"id": "42",
			"name": "Miles Davis",
			"album": [
				{"id": "300", "name": "Kind of Blue"},
				{"id": "310", "name": "Sketches of Spain"}
			]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.AlbumCount != 2 {
			t.Errorf("AlbumCount = %d, want derived 2", a.AlbumCount)
		}
	})

	t.Run("artist image falls back to cover art", func(t *testing.T) {
		a, err := DecodeArtist(mustRecord(t, `{"id": "42", "name": "Miles Davis", "coverArt": "ar-42"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ArtistImageURL != "ar-42" {
			t.Errorf("ArtistImageURL = %q, want cover art fallback", a.ArtistImageURL)
		}
	})

	t.Run("missing name is a hard failure", func(t *testing.T) {
		_, err := DecodeArtist(mustRecord(t, `{"id": "42"}`))
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	})
}

func TestDecodeGenre(t *testing.T) {
	t.Run("name comes from the value key", func(t *testing.T) {
		g, err := DecodeGenre(mustRecord(t, `{"value": "Jazz", "songCount": 120, "albumCount": 10}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Name != "Jazz" || g.SongCount != 120 || g.AlbumCount != 10 {
			t.Errorf("got %+v", g)
		}
	})

	t.Run("missing value is a hard failure", func(t *testing.T) {
		_, err := DecodeGenre(mustRecord(t, `{"songCount": 120}`))
		var de *DecodeError
		if !errors.As(err, &de) || de.Field != "value" {
			t.Fatalf("expected failure on wire field value, got %v", err)
		}
	})
}

func TestDecodeArtistInfo(t *testing.T) {
	tests := []struct {
		name     string
		imageURL string
		want     string
	}{
		{
			name:     "lastfm star placeholder is stripped",
			imageURL: "https://lastfm.freetls.fastly.net/i/u/2a96cbd8b46e442fc41c2b86b821562f.png",
			want:     "",
		},
		{
			name:     "wikipedia placeholder is stripped",
			imageURL: "https://upload.example.org/480px-No_image_available.svg.png",
			want:     "",
		},
		{
			name:     "real image is kept",
			imageURL: "https://lastfm.freetls.fastly.net/i/u/ar-42.png",
			want:     "https://lastfm.freetls.fastly.net/i/u/ar-42.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{"largeImageUrl": tt.imageURL, "biography": "bio"}
			info, err := DecodeArtistInfo(rec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.ArtistImageURL != tt.want {
				t.Errorf("ArtistImageURL = %q, want %q", info.ArtistImageURL, tt.want)
			}
		})
	}
}

func TestAugmentWithInfo(t *testing.T) {
	base := func() Artist {
		return Artist{
			ID:             "42",
			Name:           "Miles Davis",
			Biography:      "existing biography",
			ArtistImageURL: "https://img.example.org/miles.png",
		}
	}

	t.Run("empty fields never blank existing data", func(t *testing.T) {
		a := base()
		a.AugmentWithInfo(&ArtistInfo{})
		if a.Biography != "existing biography" {
			t.Errorf("Biography = %q, want untouched", a.Biography)
		}
		if a.ArtistImageURL != "https://img.example.org/miles.png" {
			t.Errorf("ArtistImageURL = %q, want untouched", a.ArtistImageURL)
		}
	})

	t.Run("non-empty fields overwrite", func(t *testing.T) {
		a := base()
		a.AugmentWithInfo(&ArtistInfo{
			Biography:     "fresh biography",
			LastFMURL:     "https://last.fm/music/Miles+Davis",
			MusicBrainzID: "561d854a-6a28-4aa7-8c99-323e6ce46c2a",
		})
		if a.Biography != "fresh biography" {
			t.Errorf("Biography = %q", a.Biography)
		}
		if a.LastFMURL != "https://last.fm/music/Miles+Davis" {
			t.Errorf("LastFMURL = %q", a.LastFMURL)
		}
		if a.ArtistImageURL != "https://img.example.org/miles.png" {
			t.Errorf("ArtistImageURL = %q, want untouched", a.ArtistImageURL)
		}
	})

	t.Run("nil payload is a no-op", func(t *testing.T) {
		a := base()
		a.AugmentWithInfo(nil)
		if a.Biography != "existing biography" {
			t.Errorf("Biography = %q, want untouched", a.Biography)
		}
	})
}

func TestDecodeDirectory(t *testing.T) {
	t.Run("children discriminate on isDir in order", func(t *testing.T) {
		dir, err := DecodeDirectory(mustRecord(t, `{
			"id": "10",
			"name": "Miles Davis",
			"child": [
				{"isDir": true, "id": "11", "name": "Kind of Blue"},
				{"isDir": false, "id": "12", "name": "stray.flac"},
				{"id": "13", "name": "another.flac"}
			]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dir.Children) != 3 {
			t.Fatalf("got %d children, want 3", len(dir.Children))
		}
		if _, ok := dir.Children[0].(Directory); !ok {
			t.Errorf("child 0 = %T, want Directory", dir.Children[0])
		}
		if _, ok := dir.Children[1].(Song); !ok {
			t.Errorf("child 1 = %T, want Song", dir.Children[1])
		}
		if _, ok := dir.Children[2].(Song); !ok {
			t.Errorf("absent isDir child = %T, want Song", dir.Children[2])
		}
	})

	t.Run("name falls back to title", func(t *testing.T) {
		dir, err := DecodeDirectory(mustRecord(t, `{"id": "10", "title": "Miles Davis"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Name != "Miles Davis" {
			t.Errorf("Name = %q, want title fallback", dir.Name)
		}
	})

	t.Run("parent defaults to root", func(t *testing.T) {
		dir, err := DecodeDirectory(mustRecord(t, `{"id": "10", "name": "x"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.ParentID != RootID {
			t.Errorf("ParentID = %q, want root sentinel", dir.ParentID)
		}
	})

	t.Run("root has no parent", func(t *testing.T) {
		dir, err := DecodeDirectory(mustRecord(t, `{"id": "root", "name": "Music"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.ParentID != "" {
			t.Errorf("root ParentID = %q, want empty", dir.ParentID)
		}
	})

	t.Run("nested directories decode recursively", func(t *testing.T) {
		dir, err := DecodeDirectory(mustRecord(t, `{
			"id": "10",
			"name": "Miles Davis",
			"child": [{
				"isDir": true,
				"id": "11",
				"name": "Kind of Blue",
				"child": [{"id": "301", "name": "So What"}]
			}]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sub, ok := dir.Children[0].(Directory)
		if !ok {
			t.Fatalf("child 0 = %T", dir.Children[0])
		}
		if sub.ParentID != "10" {
			t.Errorf("nested ParentID = %q, want 10", sub.ParentID)
		}
		if len(sub.Children) != 1 {
			t.Fatalf("nested children = %d", len(sub.Children))
		}
		if _, ok := sub.Children[0].(Song); !ok {
			t.Errorf("grandchild = %T, want Song", sub.Children[0])
		}
	})
}

func TestDecodePlaylistWithSongs(t *testing.T) {
	t.Run("aggregates derived from songs", func(t *testing.T) {
		pl, err := DecodePlaylistWithSongs(mustRecord(t, `{
			"id": "7",
			"name": "Late Night",
			"entry": [
				{"id": "1", "name": "a", "duration": 100},
				{"id": "2", "name": "b", "duration": 150},
				{"id": "3", "name": "c", "duration": 200}
			]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pl.SongCount != 3 {
			t.Errorf("SongCount = %d, want 3", pl.SongCount)
		}
		if pl.Duration != 450*time.Second {
			t.Errorf("Duration = %v, want 450s", pl.Duration)
		}
	})

	t.Run("explicit aggregates win", func(t *testing.T) {
		pl, err := DecodePlaylistWithSongs(mustRecord(t, `{
			"id": "7",
			"name": "Late Night",
			"songCount": 30,
			"duration": 7200,
			"entry": [{"id": "1", "name": "a", "duration": 100}]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pl.SongCount != 30 || pl.Duration != 7200*time.Second {
			t.Errorf("got count=%d duration=%v, want explicit values", pl.SongCount, pl.Duration)
		}
	})

	t.Run("metadata decodes", func(t *testing.T) {
		pl, err := DecodePlaylistWithSongs(mustRecord(t, `{
			"id": "7",
			"name": "Late Night",
			"owner": "maria",
			"public": true,
			"comment": "wind-down",
			"created": "2021-01-02T03:04:05.000000+0000"
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pl.Owner != "maria" || !pl.Public || pl.Comment != "wind-down" || pl.Created == nil {
			t.Errorf("metadata not decoded: %+v", pl.Playlist)
		}
	})
}

func TestDecodePlayQueue(t *testing.T) {
	t.Run("position is milliseconds on the wire", func(t *testing.T) {
		q, err := DecodePlayQueue(mustRecord(t, `{"position": 1500}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Position != 1500*time.Millisecond {
			t.Errorf("Position = %v, want 1.5s", q.Position)
		}
	})

	t.Run("current resolves to an index", func(t *testing.T) {
		q, err := DecodePlayQueue(mustRecord(t, `{
			"current": "2",
			"entry": [
				{"id": "1", "name": "a"},
				{"id": "2", "name": "b"},
				{"id": "3", "name": "c"}
			]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.CurrentIndex == nil || *q.CurrentIndex != 1 {
			t.Errorf("CurrentIndex = %v, want 1", q.CurrentIndex)
		}
	})

	t.Run("unknown current leaves index absent", func(t *testing.T) {
		q, err := DecodePlayQueue(mustRecord(t, `{
			"current": "99",
			"entry": [{"id": "1", "name": "a"}]
		}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.CurrentIndex != nil {
			t.Errorf("CurrentIndex = %v, want nil", q.CurrentIndex)
		}
	})

	t.Run("no current means no index", func(t *testing.T) {
		q, err := DecodePlayQueue(mustRecord(t, `{"entry": [{"id": "1", "name": "a"}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.CurrentIndex != nil {
			t.Errorf("CurrentIndex = %v, want nil", q.CurrentIndex)
		}
	})
}

func TestDecodeArtistsListing(t *testing.T) {
	as, err := DecodeArtists(mustRecord(t, `{
		"ignoredArticles": "The El La",
		"index": [
			{"name": "B", "artist": [{"id": "5", "name": "Bill Evans"}]},
			{"name": "M", "artist": [
				{"id": "42", "name": "Miles Davis"},
				{"name": "Mystery Band"}
			]}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.IgnoredArticles != "The El La" {
		t.Errorf("IgnoredArticles = %q", as.IgnoredArticles)
	}
	if len(as.Index) != 2 || as.Index[0].Name != "B" || len(as.Index[1].Artists) != 2 {
		t.Fatalf("groupings wrong: %+v", as.Index)
	}
	if as.Index[1].Artists[1].ID == "" {
		t.Error("artist without server id should get a synthesized one")
	}
}

func TestDecodeSearchResult(t *testing.T) {
	res, err := DecodeSearchResult(mustRecord(t, `{
		"artist": [{"id": "42", "name": "Miles Davis"}],
		"album": [{"id": "300", "name": "Kind of Blue"}],
		"song": [
			{"id": "301", "name": "So What"},
			{"id": "302", "name": "Freddie Freeloader"}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Artists) != 1 || len(res.Albums) != 1 || len(res.Songs) != 2 {
		t.Errorf("got %d/%d/%d artists/albums/songs", len(res.Artists), len(res.Albums), len(res.Songs))
	}
}
