package valueobjects

// NowPlaying is the track currently on Spotify. IsPlaying is false while paused.
type NowPlaying struct {
	IsPlaying     bool   `json:"isPlaying"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	AlbumImageURL string `json:"albumImageUrl"`
	SongURL       string `json:"songUrl"`
	Duration      int    `json:"duration"`
	Progress      int    `json:"progress"`
}

// RecentTrack is the last track played on Spotify
type RecentTrack struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	AlbumImageURL string `json:"albumImageUrl"`
	SongURL       string `json:"songUrl"`
	Duration      int    `json:"duration"`
	PlayedAt      string `json:"playedAt"`
	Timestamp     int64  `json:"timestamp"`
}

// Video is a YouTube upload with its statistics
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"publishedAt"`
	ViewCount   string `json:"viewCount"`
	LikeCount   string `json:"likeCount"`
	VideoURL    string `json:"videoUrl"`
}

// Reel is an Instagram video post
type Reel struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaURL     string `json:"mediaUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}
