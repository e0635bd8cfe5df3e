package subsonic

import "strings"

// fieldMap gives the wire key for each of an entity's semantic attributes.
// The default is the attribute name converted to the wire's lowerCamel
// convention; overrides list the renames the protocol forces. Decode and
// encode consult the same table, so the two directions cannot drift apart.
type fieldMap struct {
	entity    string
	overrides map[string]string
}

func (m fieldMap) wireKey(attr string) string {
	if key, ok := m.overrides[attr]; ok {
		return key
	}
	return lowerCamel(attr)
}

// lowerCamel converts a snake_case attribute name to the wire's lowerCamel
// convention: song_count -> songCount.
func lowerCamel(attr string) string {
	parts := strings.Split(attr, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

var (
	genreFields = fieldMap{entity: "Genre", overrides: map[string]string{
		"name": "value",
	}}

	artistFields = fieldMap{entity: "Artist", overrides: map[string]string{
		"albums":          "album",
		"similar_artists": "similar_artist",
	}}

	artistInfoFields = fieldMap{entity: "ArtistInfo", overrides: map[string]string{
		"similar_artists":  "similarArtist",
		"artist_image_url": "largeImageUrl",
	}}

	albumFields = fieldMap{entity: "Album", overrides: map[string]string{
		"songs": "song",
	}}

	songFields = fieldMap{entity: "Song", overrides: map[string]string{
		"title":     "name",
		"parent_id": "parent",
	}}

	directoryFields = fieldMap{entity: "Directory", overrides: map[string]string{
		"parent_id": "parent",
		"children":  "child",
	}}

	playlistFields = fieldMap{entity: "Playlist"}

	playlistWithSongsFields = fieldMap{entity: "PlaylistWithSongs", overrides: map[string]string{
		"songs": "entry",
	}}

	playQueueFields = fieldMap{entity: "PlayQueue", overrides: map[string]string{
		"songs": "entry",
	}}

	indexFields = fieldMap{entity: "Index", overrides: map[string]string{
		"artists": "artist",
	}}

	artistsFields = fieldMap{entity: "Artists"}

	indexesFields = fieldMap{entity: "Indexes"}

	albumListFields = fieldMap{entity: "AlbumList", overrides: map[string]string{
		"albums": "album",
	}}

	genreListFields = fieldMap{entity: "GenreList", overrides: map[string]string{
		"genres": "genre",
	}}

	playlistsFields = fieldMap{entity: "Playlists", overrides: map[string]string{
		"playlists": "playlist",
	}}

	searchResultFields = fieldMap{entity: "SearchResult", overrides: map[string]string{
		"artists": "artist",
		"albums":  "album",
		"songs":   "song",
	}}

	serverErrorFields = fieldMap{entity: "ServerError"}

	responseFields = fieldMap{entity: "Response", overrides: map[string]string{
		"artist_info":   "artistInfo2",
		"albums":        "albumList2",
		"play_queue":    "playQueue",
		"search_result": "searchResult3",
	}}
)
