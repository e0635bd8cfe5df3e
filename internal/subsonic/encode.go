package subsonic

import "time"

// enc accumulates one entity's wire record through the same field map the
// decoder reads, omitting absent values so the output matches what a real
// server sends, modulo key ordering.
type enc struct {
	fm  fieldMap
	rec Record
}

func newEnc(fm fieldMap) *enc {
	return &enc{fm: fm, rec: Record{}}
}

func (e *enc) set(attr string, v any) { e.rec[e.fm.wireKey(attr)] = v }

func (e *enc) str(attr, v string) {
	if v != "" {
		e.set(attr, v)
	}
}

func (e *enc) integer(attr string, v int) {
	if v != 0 {
		e.set(attr, v)
	}
}

func (e *enc) boolean(attr string, v bool) {
	if v {
		e.set(attr, v)
	}
}

func (e *enc) instant(attr string, t *time.Time) {
	if t != nil {
		e.set(attr, encodeInstant(t))
	}
}

func (e *enc) seconds(attr string, d time.Duration) {
	if d != 0 {
		e.set(attr, encodeSeconds(d))
	}
}

func (e *enc) millis(attr string, d time.Duration) {
	if d != 0 {
		e.set(attr, encodeMillis(d))
	}
}

// EncodeGenre encodes a genre back to wire form.
func EncodeGenre(g Genre) Record {
	e := newEnc(genreFields)
	e.str("name", g.Name)
	e.integer("song_count", g.SongCount)
	e.integer("album_count", g.AlbumCount)
	return e.rec
}

// EncodeArtist encodes an artist, its albums, and its enrichment fields
// back to wire form.
func EncodeArtist(a Artist) Record {
	e := newEnc(artistFields)
	e.str("id", a.ID)
	e.str("name", a.Name)
	e.integer("album_count", a.AlbumCount)
	e.str("cover_art", a.CoverArt)
	e.str("artist_image_url", a.ArtistImageURL)
	e.instant("starred", a.Starred)
	e.str("biography", a.Biography)
	e.str("music_brainz_id", a.MusicBrainzID)
	e.str("last_fm_url", a.LastFMURL)
	if len(a.Albums) > 0 {
		albums := make([]any, len(a.Albums))
		for i, al := range a.Albums {
			albums[i] = EncodeAlbum(al)
		}
		e.set("albums", albums)
	}
	if len(a.SimilarArtists) > 0 {
		similar := make([]any, len(a.SimilarArtists))
		for i, sa := range a.SimilarArtists {
			similar[i] = EncodeArtist(sa)
		}
		e.set("similar_artists", similar)
	}
	return e.rec
}

// EncodeArtistInfo encodes an enrichment payload back to wire form.
func EncodeArtistInfo(info ArtistInfo) Record {
	e := newEnc(artistInfoFields)
	e.str("biography", info.Biography)
	e.str("last_fm_url", info.LastFMURL)
	e.str("artist_image_url", info.ArtistImageURL)
	e.str("music_brainz_id", info.MusicBrainzID)
	if len(info.SimilarArtists) > 0 {
		similar := make([]any, len(info.SimilarArtists))
		for i, sa := range info.SimilarArtists {
			similar[i] = EncodeArtist(sa)
		}
		e.set("similar_artists", similar)
	}
	return e.rec
}

// EncodeAlbum encodes an album back to wire form. The artist and genre
// stubs flatten back into the inline id+name pairs they were built from.
func EncodeAlbum(al Album) Record {
	e := newEnc(albumFields)
	e.str("id", al.ID)
	e.str("name", al.Name)
	e.str("cover_art", al.CoverArt)
	e.integer("song_count", al.SongCount)
	e.integer("year", al.Year)
	e.seconds("duration", al.Duration)
	e.instant("created", al.Created)
	e.instant("starred", al.Starred)
	e.integer("play_count", al.PlayCount)
	if al.Artist != nil {
		e.str("artist_id", al.Artist.ID)
		e.str("artist", al.Artist.Name)
	}
	if al.Genre != nil {
		e.str("genre", al.Genre.Name)
	}
	if len(al.Songs) > 0 {
		songs := make([]any, len(al.Songs))
		for i, s := range al.Songs {
			songs[i] = EncodeSong(s)
		}
		e.set("songs", songs)
	}
	return e.rec
}

// EncodeSong encodes a song back to wire form.
func EncodeSong(s Song) Record {
	e := newEnc(songFields)
	e.str("id", s.ID)
	e.str("title", s.Title)
	e.str("path", s.Path)
	e.str("parent_id", s.ParentID)
	e.seconds("duration", s.Duration)
	e.integer("track", s.Track)
	e.integer("disc_number", s.DiscNumber)
	e.integer("year", s.Year)
	e.str("cover_art", s.CoverArt)
	e.integer("user_rating", s.UserRating)
	e.instant("starred", s.Starred)
	if s.Artist != nil {
		e.str("artist_id", s.Artist.ID)
		e.str("artist", s.Artist.Name)
	}
	if s.Album != nil {
		e.str("album_id", s.Album.ID)
		e.str("album", s.Album.Name)
	}
	if s.Genre != nil {
		e.str("genre", s.Genre.Name)
	}
	return e.rec
}

// EncodeDirectory encodes a directory back to wire form, restoring the
// isDir discriminator on each child.
func EncodeDirectory(dir Directory) Record {
	e := newEnc(directoryFields)
	e.str("id", dir.ID)
	e.str("name", dir.Name)
	e.str("parent_id", dir.ParentID)
	if len(dir.Children) > 0 {
		children := make([]any, len(dir.Children))
		for i, c := range dir.Children {
			switch child := c.(type) {
			case Directory:
				rec := EncodeDirectory(child)
				rec["isDir"] = true
				children[i] = rec
			case Song:
				rec := EncodeSong(child)
				rec["isDir"] = false
				children[i] = rec
			}
		}
		e.set("children", children)
	}
	return e.rec
}

func encodePlaylistCommon(e *enc, pl Playlist) {
	e.str("id", pl.ID)
	e.str("name", pl.Name)
	e.integer("song_count", pl.SongCount)
	e.seconds("duration", pl.Duration)
	e.instant("created", pl.Created)
	e.instant("changed", pl.Changed)
	e.str("comment", pl.Comment)
	e.str("owner", pl.Owner)
	e.boolean("public", pl.Public)
	e.str("cover_art", pl.CoverArt)
}

// EncodePlaylist encodes the listing form of a playlist.
func EncodePlaylist(pl Playlist) Record {
	e := newEnc(playlistFields)
	encodePlaylistCommon(e, pl)
	return e.rec
}

// EncodePlaylistWithSongs encodes the detail form of a playlist.
func EncodePlaylistWithSongs(pl PlaylistWithSongs) Record {
	e := newEnc(playlistWithSongsFields)
	encodePlaylistCommon(e, pl.Playlist)
	if len(pl.Songs) > 0 {
		songs := make([]any, len(pl.Songs))
		for i, s := range pl.Songs {
			songs[i] = EncodeSong(s)
		}
		e.set("songs", songs)
	}
	return e.rec
}

// EncodePlayQueue encodes a play queue back to wire form. The position is
// denormalized to the wire's milliseconds; the current index is derived
// state and not part of the wire shape.
func EncodePlayQueue(q PlayQueue) Record {
	e := newEnc(playQueueFields)
	e.millis("position", q.Position)
	e.str("username", q.Username)
	e.instant("changed", q.Changed)
	e.str("changed_by", q.ChangedBy)
	e.str("current", q.Current)
	if len(q.Songs) > 0 {
		songs := make([]any, len(q.Songs))
		for i, s := range q.Songs {
			songs[i] = EncodeSong(s)
		}
		e.set("songs", songs)
	}
	return e.rec
}

// EncodeIndex encodes one artist grouping.
func EncodeIndex(idx Index) Record {
	e := newEnc(indexFields)
	e.str("name", idx.Name)
	if len(idx.Artists) > 0 {
		artists := make([]any, len(idx.Artists))
		for i, a := range idx.Artists {
			artists[i] = EncodeArtist(a)
		}
		e.set("artists", artists)
	}
	return e.rec
}

// EncodeArtists encodes the tag-based artist listing.
func EncodeArtists(as Artists) Record {
	e := newEnc(artistsFields)
	e.str("ignored_articles", as.IgnoredArticles)
	if len(as.Index) > 0 {
		index := make([]any, len(as.Index))
		for i, idx := range as.Index {
			index[i] = EncodeIndex(idx)
		}
		e.set("index", index)
	}
	return e.rec
}

// EncodeIndexes encodes the folder-based artist listing.
func EncodeIndexes(in Indexes) Record {
	e := newEnc(indexesFields)
	e.str("ignored_articles", in.IgnoredArticles)
	if len(in.Index) > 0 {
		index := make([]any, len(in.Index))
		for i, idx := range in.Index {
			index[i] = EncodeIndex(idx)
		}
		e.set("index", index)
	}
	return e.rec
}

// EncodeAlbumList encodes an album listing.
func EncodeAlbumList(list AlbumList) Record {
	e := newEnc(albumListFields)
	if len(list.Albums) > 0 {
		albums := make([]any, len(list.Albums))
		for i, al := range list.Albums {
			albums[i] = EncodeAlbum(al)
		}
		e.set("albums", albums)
	}
	return e.rec
}

// EncodeGenreList encodes a genre listing.
func EncodeGenreList(list GenreList) Record {
	e := newEnc(genreListFields)
	if len(list.Genres) > 0 {
		genres := make([]any, len(list.Genres))
		for i, g := range list.Genres {
			genres[i] = EncodeGenre(g)
		}
		e.set("genres", genres)
	}
	return e.rec
}

// EncodePlaylists encodes a playlist listing.
func EncodePlaylists(list Playlists) Record {
	e := newEnc(playlistsFields)
	if len(list.Playlists) > 0 {
		playlists := make([]any, len(list.Playlists))
		for i, pl := range list.Playlists {
			playlists[i] = EncodePlaylist(pl)
		}
		e.set("playlists", playlists)
	}
	return e.rec
}

// EncodeSearchResult encodes a search reply.
func EncodeSearchResult(res SearchResult) Record {
	e := newEnc(searchResultFields)
	if len(res.Artists) > 0 {
		artists := make([]any, len(res.Artists))
		for i, a := range res.Artists {
			artists[i] = EncodeArtist(a)
		}
		e.set("artists", artists)
	}
	if len(res.Albums) > 0 {
		albums := make([]any, len(res.Albums))
		for i, al := range res.Albums {
			albums[i] = EncodeAlbum(al)
		}
		e.set("albums", albums)
	}
	if len(res.Songs) > 0 {
		songs := make([]any, len(res.Songs))
		for i, s := range res.Songs {
			songs[i] = EncodeSong(s)
		}
		e.set("songs", songs)
	}
	return e.rec
}
