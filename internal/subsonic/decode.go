package subsonic

import (
	"strings"

	"github.com/google/uuid"
)

// synthesizeArtistID derives a stable identifier from an artist's display
// name, for servers that omit ids on synthesized or partial records. The
// SHA-1-based UUID is a pure function of the name, so repeated decodes of
// the same unnamed artist always agree.
func synthesizeArtistID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("subsonic:artist:"+name)).String()
}

// artistRef builds the stub reference for an inline artistId/artist pair.
// A name with no id cannot be cross-referenced, so no id means no
// reference; an id with no name yields an id-only stub.
func artistRef(id, name string) *Artist {
	if id == "" {
		return nil
	}
	return &Artist{ID: id, Name: name}
}

// albumRef builds the stub reference for an inline albumId/album pair.
func albumRef(id, name string) *Album {
	if id == "" {
		return nil
	}
	return &Album{ID: id, Name: name}
}

// genreRef builds the stub reference for an inline genre name.
func genreRef(name string) *Genre {
	if name == "" {
		return nil
	}
	return &Genre{Name: name}
}

// resolveParent applies the root-sentinel rule: the root itself has no
// parent, and an absent wire parent on any other record means the root.
func resolveParent(id, parent string) string {
	if id == RootID {
		return ""
	}
	if parent == "" {
		return RootID
	}
	return parent
}

// DecodeGenre decodes one genre record.
func DecodeGenre(rec Record) (Genre, error) {
	d := newDec(genreFields, rec)
	g := Genre{
		Name:       d.reqStr("name"),
		SongCount:  d.integer("song_count"),
		AlbumCount: d.integer("album_count"),
	}
	if d.err != nil {
		return Genre{}, d.err
	}
	return g, nil
}

// DecodeArtist decodes one artist record, including its owned albums and
// any embedded similar artists, then normalizes: a missing id is
// synthesized from the name, the album count falls back to the embedded
// album list, and the artist image falls back to the cover art.
func DecodeArtist(rec Record) (Artist, error) {
	d := newDec(artistFields, rec)
	a := Artist{
		ID:             d.str("id"),
		Name:           d.reqStr("name"),
		AlbumCount:     d.integer("album_count"),
		CoverArt:       d.str("cover_art"),
		ArtistImageURL: d.str("artist_image_url"),
		Starred:        d.instant("starred"),
		Biography:      d.str("biography"),
		MusicBrainzID:  d.str("music_brainz_id"),
		LastFMURL:      d.str("last_fm_url"),
	}
	for _, ar := range d.records("albums") {
		al, err := DecodeAlbum(ar)
		if err != nil {
			return Artist{}, err
		}
		a.Albums = append(a.Albums, al)
	}
	for _, sr := range d.records("similar_artists") {
		sa, err := DecodeArtist(sr)
		if err != nil {
			return Artist{}, err
		}
		a.SimilarArtists = append(a.SimilarArtists, sa)
	}
	if d.err != nil {
		return Artist{}, d.err
	}
	if a.ID == "" {
		a.ID = synthesizeArtistID(a.Name)
	}
	if a.AlbumCount == 0 {
		a.AlbumCount = len(a.Albums)
	}
	if a.ArtistImageURL == "" {
		a.ArtistImageURL = a.CoverArt
	}
	return a, nil
}

// Known "no artwork" placeholder images served in artist-info payloads.
// They are normalized to empty at decode so a merge never propagates a
// placeholder into the model.
var placeholderImageSuffixes = []string{
	"2a96cbd8b46e442fc41c2b86b821562f.png",
	"-No_image_available.svg.png",
}

func stripPlaceholderImage(url string) string {
	for _, suffix := range placeholderImageSuffixes {
		if strings.HasSuffix(url, suffix) {
			return ""
		}
	}
	return url
}

// DecodeArtistInfo decodes an artist-info enrichment payload.
func DecodeArtistInfo(rec Record) (ArtistInfo, error) {
	d := newDec(artistInfoFields, rec)
	info := ArtistInfo{
		Biography:      d.str("biography"),
		LastFMURL:      d.str("last_fm_url"),
		ArtistImageURL: d.str("artist_image_url"),
		MusicBrainzID:  d.str("music_brainz_id"),
	}
	for _, sr := range d.records("similar_artists") {
		sa, err := DecodeArtist(sr)
		if err != nil {
			return ArtistInfo{}, err
		}
		info.SimilarArtists = append(info.SimilarArtists, sa)
	}
	if d.err != nil {
		return ArtistInfo{}, d.err
	}
	info.ArtistImageURL = stripPlaceholderImage(info.ArtistImageURL)
	return info, nil
}

// AugmentWithInfo overlays the non-empty fields of an enrichment payload
// onto the artist. Empty payload fields never blank out existing data.
// This is the one sanctioned mutation of an already-constructed entity.
func (a *Artist) AugmentWithInfo(info *ArtistInfo) {
	if info == nil {
		return
	}
	if len(info.SimilarArtists) > 0 {
		a.SimilarArtists = info.SimilarArtists
	}
	if info.Biography != "" {
		a.Biography = info.Biography
	}
	if info.LastFMURL != "" {
		a.LastFMURL = info.LastFMURL
	}
	if info.ArtistImageURL != "" {
		a.ArtistImageURL = info.ArtistImageURL
	}
	if info.MusicBrainzID != "" {
		a.MusicBrainzID = info.MusicBrainzID
	}
}

// DecodeAlbum decodes one album record. Songs are decoded (and normalized)
// first, so the album's derived aggregates see final values; an explicit
// wire songCount or duration always wins over the derived one.
func DecodeAlbum(rec Record) (Album, error) {
	d := newDec(albumFields, rec)
	al := Album{
		ID:        d.reqStr("id"),
		Name:      d.reqStr("name"),
		CoverArt:  d.str("cover_art"),
		SongCount: d.integer("song_count"),
		Year:      d.integer("year"),
		Duration:  d.seconds("duration"),
		Created:   d.instant("created"),
		Starred:   d.instant("starred"),
		PlayCount: d.integer("play_count"),
		Artist:    artistRef(d.str("artist_id"), d.str("artist")),
		Genre:     genreRef(d.str("genre")),
	}
	for _, sr := range d.records("songs") {
		s, err := DecodeSong(sr)
		if err != nil {
			return Album{}, err
		}
		al.Songs = append(al.Songs, s)
	}
	if d.err != nil {
		return Album{}, d.err
	}
	if al.SongCount == 0 {
		al.SongCount = len(al.Songs)
	}
	if al.Duration == 0 {
		for _, s := range al.Songs {
			al.Duration += s.Duration
		}
	}
	return al, nil
}

// DecodeSong decodes one song record. The artist, album, and genre
// references are stubs resolved from the inline id+name pairs.
func DecodeSong(rec Record) (Song, error) {
	d := newDec(songFields, rec)
	s := Song{
		ID:         d.reqStr("id"),
		Title:      d.reqStr("title"),
		Path:       d.str("path"),
		ParentID:   d.str("parent_id"),
		Duration:   d.seconds("duration"),
		Track:      d.integer("track"),
		DiscNumber: d.integer("disc_number"),
		Year:       d.integer("year"),
		CoverArt:   d.str("cover_art"),
		UserRating: d.integer("user_rating"),
		Starred:    d.instant("starred"),
		Artist:     artistRef(d.str("artist_id"), d.str("artist")),
		Album:      albumRef(d.str("album_id"), d.str("album")),
		Genre:      genreRef(d.str("genre")),
	}
	if d.err != nil {
		return Song{}, d.err
	}
	s.ParentID = resolveParent(s.ID, s.ParentID)
	return s, nil
}

// DecodeDirectory decodes one directory record. Each child record is
// dispatched on its isDir flag: true decodes as a nested Directory,
// false or absent as a Song, preserving the original order.
func DecodeDirectory(rec Record) (Directory, error) {
	d := newDec(directoryFields, rec)
	dir := Directory{
		ID:       d.reqStr("id"),
		Name:     d.str("name"),
		ParentID: d.str("parent_id"),
	}
	if dir.Name == "" {
		dir.Name = d.str("title")
	}
	for _, cr := range d.records("children") {
		var (
			child Entry
			err   error
		)
		if truthy(cr["isDir"]) {
			child, err = DecodeDirectory(cr)
		} else {
			child, err = DecodeSong(cr)
		}
		if err != nil {
			return Directory{}, err
		}
		dir.Children = append(dir.Children, child)
	}
	if d.err != nil {
		return Directory{}, d.err
	}
	dir.ParentID = resolveParent(dir.ID, dir.ParentID)
	return dir, nil
}

// decodePlaylistCommon reads the fields shared by the listing and detail
// forms of a playlist.
func decodePlaylistCommon(d *dec) Playlist {
	return Playlist{
		ID:        d.reqStr("id"),
		Name:      d.reqStr("name"),
		SongCount: d.integer("song_count"),
		Duration:  d.seconds("duration"),
		Created:   d.instant("created"),
		Changed:   d.instant("changed"),
		Comment:   d.str("comment"),
		Owner:     d.str("owner"),
		Public:    d.boolean("public"),
		CoverArt:  d.str("cover_art"),
	}
}

// DecodePlaylist decodes the listing form of a playlist.
func DecodePlaylist(rec Record) (Playlist, error) {
	d := newDec(playlistFields, rec)
	pl := decodePlaylistCommon(d)
	if d.err != nil {
		return Playlist{}, d.err
	}
	return pl, nil
}

// DecodePlaylistWithSongs decodes the detail form of a playlist. The song
// count and total duration fall back to aggregates over the embedded songs
// when the server omits them.
func DecodePlaylistWithSongs(rec Record) (PlaylistWithSongs, error) {
	d := newDec(playlistWithSongsFields, rec)
	pl := PlaylistWithSongs{Playlist: decodePlaylistCommon(d)}
	for _, sr := range d.records("songs") {
		s, err := DecodeSong(sr)
		if err != nil {
			return PlaylistWithSongs{}, err
		}
		pl.Songs = append(pl.Songs, s)
	}
	if d.err != nil {
		return PlaylistWithSongs{}, d.err
	}
	if pl.SongCount == 0 {
		pl.SongCount = len(pl.Songs)
	}
	if pl.Duration == 0 {
		for _, s := range pl.Songs {
			pl.Duration += s.Duration
		}
	}
	return pl, nil
}

// DecodePlayQueue decodes a saved play queue. The wire position is in
// milliseconds and is normalized here. A current id that matches no song
// in the queue leaves CurrentIndex nil; it is not a decode failure.
func DecodePlayQueue(rec Record) (PlayQueue, error) {
	d := newDec(playQueueFields, rec)
	q := PlayQueue{
		Position:  d.millis("position"),
		Username:  d.str("username"),
		Changed:   d.instant("changed"),
		ChangedBy: d.str("changed_by"),
		Current:   d.str("current"),
	}
	for _, sr := range d.records("songs") {
		s, err := DecodeSong(sr)
		if err != nil {
			return PlayQueue{}, err
		}
		q.Songs = append(q.Songs, s)
	}
	if d.err != nil {
		return PlayQueue{}, d.err
	}
	if q.Current != "" {
		for i, s := range q.Songs {
			if s.ID == q.Current {
				idx := i
				q.CurrentIndex = &idx
				break
			}
		}
	}
	return q, nil
}

// DecodeIndex decodes one alphabetical artist grouping. Both the tag-based
// and the folder-based listings share this shape.
func DecodeIndex(rec Record) (Index, error) {
	d := newDec(indexFields, rec)
	idx := Index{Name: d.reqStr("name")}
	for _, ar := range d.records("artists") {
		a, err := DecodeArtist(ar)
		if err != nil {
			return Index{}, err
		}
		idx.Artists = append(idx.Artists, a)
	}
	if d.err != nil {
		return Index{}, d.err
	}
	return idx, nil
}

// DecodeArtists decodes the tag-based artist listing.
func DecodeArtists(rec Record) (Artists, error) {
	d := newDec(artistsFields, rec)
	as := Artists{IgnoredArticles: d.str("ignored_articles")}
	for _, ir := range d.records("index") {
		idx, err := DecodeIndex(ir)
		if err != nil {
			return Artists{}, err
		}
		as.Index = append(as.Index, idx)
	}
	if d.err != nil {
		return Artists{}, d.err
	}
	return as, nil
}

// DecodeIndexes decodes the folder-based artist listing.
func DecodeIndexes(rec Record) (Indexes, error) {
	d := newDec(indexesFields, rec)
	in := Indexes{IgnoredArticles: d.str("ignored_articles")}
	for _, ir := range d.records("index") {
		idx, err := DecodeIndex(ir)
		if err != nil {
			return Indexes{}, err
		}
		in.Index = append(in.Index, idx)
	}
	if d.err != nil {
		return Indexes{}, d.err
	}
	return in, nil
}

// DecodeAlbumList decodes an album listing reply.
func DecodeAlbumList(rec Record) (AlbumList, error) {
	d := newDec(albumListFields, rec)
	var list AlbumList
	for _, ar := range d.records("albums") {
		al, err := DecodeAlbum(ar)
		if err != nil {
			return AlbumList{}, err
		}
		list.Albums = append(list.Albums, al)
	}
	if d.err != nil {
		return AlbumList{}, d.err
	}
	return list, nil
}

// DecodeGenreList decodes a genre listing reply.
func DecodeGenreList(rec Record) (GenreList, error) {
	d := newDec(genreListFields, rec)
	var list GenreList
	for _, gr := range d.records("genres") {
		g, err := DecodeGenre(gr)
		if err != nil {
			return GenreList{}, err
		}
		list.Genres = append(list.Genres, g)
	}
	if d.err != nil {
		return GenreList{}, d.err
	}
	return list, nil
}

// DecodePlaylists decodes a playlist listing reply.
func DecodePlaylists(rec Record) (Playlists, error) {
	d := newDec(playlistsFields, rec)
	var list Playlists
	for _, pr := range d.records("playlists") {
		pl, err := DecodePlaylist(pr)
		if err != nil {
			return Playlists{}, err
		}
		list.Playlists = append(list.Playlists, pl)
	}
	if d.err != nil {
		return Playlists{}, d.err
	}
	return list, nil
}

// DecodeSearchResult decodes a search reply.
func DecodeSearchResult(rec Record) (SearchResult, error) {
	d := newDec(searchResultFields, rec)
	var res SearchResult
	for _, ar := range d.records("artists") {
		a, err := DecodeArtist(ar)
		if err != nil {
			return SearchResult{}, err
		}
		res.Artists = append(res.Artists, a)
	}
	for _, ar := range d.records("albums") {
		al, err := DecodeAlbum(ar)
		if err != nil {
			return SearchResult{}, err
		}
		res.Albums = append(res.Albums, al)
	}
	for _, sr := range d.records("songs") {
		s, err := DecodeSong(sr)
		if err != nil {
			return SearchResult{}, err
		}
		res.Songs = append(res.Songs, s)
	}
	if d.err != nil {
		return SearchResult{}, d.err
	}
	return res, nil
}

// DecodeServerError decodes the envelope's error slot.
func DecodeServerError(rec Record) (ServerError, error) {
	d := newDec(serverErrorFields, rec)
	se := ServerError{
		Code:    d.integer("code"),
		Message: d.str("message"),
	}
	if d.err != nil {
		return ServerError{}, d.err
	}
	return se, nil
}
