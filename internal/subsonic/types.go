// Package subsonic adapts raw Subsonic API replies into the player's
// normalized domain model. The layer is purely functional: it takes the
// generic tree produced by parsing a reply's JSON and returns a fully
// cross-referenced entity graph, or a typed decode failure. Network
// transport, caching, and playback belong to the callers.
package subsonic

import "time"

// RootID is the reserved parent id marking the top of the directory tree.
// Every Song and Directory except the root itself resolves to a parent;
// an absent wire parent defaults to RootID.
const RootID = "root"

// Genre is a music genre. When built as a cross-reference stub only Name
// is set.
type Genre struct {
	Name       string
	SongCount  int
	AlbumCount int
}

// Artist is an artist, either fully decoded from an artist reply or built
// as an id+name stub from an inline reference. The enrichment fields stay
// empty until AugmentWithInfo overlays an artist-info payload.
type Artist struct {
	ID             string
	Name           string
	Albums         []Album
	AlbumCount     int
	CoverArt       string
	ArtistImageURL string
	Starred        *time.Time

	// Enrichment
	SimilarArtists []Artist
	Biography      string
	MusicBrainzID  string
	LastFMURL      string
}

// Album owns its songs; its artist and genre are stub references resolved
// from the inline id+name pairs the wire embeds.
type Album struct {
	ID        string
	Name      string
	CoverArt  string
	SongCount int
	Year      int
	Duration  time.Duration
	Created   *time.Time
	Starred   *time.Time
	PlayCount int
	Songs     []Song
	Artist    *Artist
	Genre     *Genre
}

// Song references its album as a stub only (id + name), never the full
// album, so the Album/Song types stay acyclic in practice: an Album owns
// many Songs, a Song points back at one stub.
type Song struct {
	ID         string
	Title      string
	Path       string
	ParentID   string
	Duration   time.Duration
	Artist     *Artist
	Album      *Album
	Genre      *Genre
	Track      int
	DiscNumber int
	Year       int
	CoverArt   string
	UserRating int
	Starred    *time.Time
}

// Entry is one child of a Directory: either a Directory or a Song,
// discriminated on the wire by the child record's isDir flag.
type Entry interface {
	entryID() string
}

func (d Directory) entryID() string { return d.ID }
func (s Song) entryID() string      { return s.ID }

// Directory is a node of the folder-based browse tree.
type Directory struct {
	ID       string
	Name     string
	ParentID string
	Children []Entry
}

// Playlist is the listing form of a playlist, without its songs.
type Playlist struct {
	ID        string
	Name      string
	SongCount int
	Duration  time.Duration
	Created   *time.Time
	Changed   *time.Time
	Comment   string
	Owner     string
	Public    bool
	CoverArt  string
}

// PlaylistWithSongs is the detail form. SongCount and Duration fall back to
// aggregates over Songs when the server omits them.
type PlaylistWithSongs struct {
	Playlist
	Songs []Song
}

// PlayQueue is the saved playback queue. Position is normalized from the
// wire's milliseconds to a Duration. CurrentIndex is the resolved index of
// Current within Songs; nil when no current song is set or the id matches
// nothing in the queue.
type PlayQueue struct {
	Songs        []Song
	Position     time.Duration
	Username     string
	Changed      *time.Time
	ChangedBy    string
	Current      string
	CurrentIndex *int
}

// ArtistInfo is the enrichment payload for an artist. Placeholder image
// URLs are normalized to empty at decode, before any merge.
type ArtistInfo struct {
	SimilarArtists []Artist
	Biography      string
	LastFMURL      string
	ArtistImageURL string
	MusicBrainzID  string
}

// Index is one alphabetical grouping of artists.
type Index struct {
	Name    string
	Artists []Artist
}

// Artists is the tag-based (ID3) artist listing.
type Artists struct {
	IgnoredArticles string
	Index           []Index
}

// Indexes is the folder-based artist listing.
type Indexes struct {
	IgnoredArticles string
	Index           []Index
}

// AlbumList is an album listing reply.
type AlbumList struct {
	Albums []Album
}

// GenreList is a genre listing reply.
type GenreList struct {
	Genres []Genre
}

// Playlists is a playlist listing reply.
type Playlists struct {
	Playlists []Playlist
}

// SearchResult is a search reply across the three entity kinds.
type SearchResult struct {
	Artists []Artist
	Albums  []Album
	Songs   []Song
}

// Response is the top-level reply envelope: one optional slot per reply
// shape the server can send, with exactly one populated per real reply.
// Consumers inspect which slot is non-nil to learn what they received.
type Response struct {
	Artists      *Artists
	Artist       *Artist
	ArtistInfo   *ArtistInfo
	Albums       *AlbumList
	Album        *Album
	Directory    *Directory
	Genres       *GenreList
	Indexes      *Indexes
	Playlist     *PlaylistWithSongs
	Playlists    *Playlists
	PlayQueue    *PlayQueue
	Song         *Song
	SearchResult *SearchResult
	Error        *ServerError
}
