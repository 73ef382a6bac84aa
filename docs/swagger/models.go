package docs

// Request and response shapes referenced by the handler annotations. They mirror
// the JSON the handlers write and exist for documentation only.

// ContactRequest is the contact form body
// @Description All four fields are required
type ContactRequest struct {
	Name    string `json:"name" example:"Ada Lovelace" maxLength:"200"`
	Email   string `json:"email" example:"ada@example.com"`
	Subject string `json:"subject" example:"Collaboration" maxLength:"300"`
	Message string `json:"message" example:"Hi! I liked your Mindscape." maxLength:"10000"`
}

// MessageResponse is {success, message}
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Thank you for your message! I'll get back to you soon."`
}

// ErrorResponse is the error body of the enveloped endpoints
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Missing required fields"`
}

// Node is one Mindscape node
type Node struct {
	ID       string   `json:"id" example:"node-1"`
	Title    string   `json:"title" example:"Distributed Systems"`
	Content  string   `json:"content"`
	Type     string   `json:"type" example:"concept" enums:"project,concept,idea,resource,note,code"`
	Tags     []string `json:"tags"`
	IsPublic bool     `json:"isPublic" example:"true"`
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"position"`
	Style struct {
		Color string  `json:"color" example:"#666666"`
		Size  float64 `json:"size" example:"50"`
	} `json:"style"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Connection links two nodes
type Connection struct {
	ID           string  `json:"id"`
	SourceNodeID string  `json:"sourceNodeId"`
	TargetNodeID string  `json:"targetNodeId"`
	Strength     float64 `json:"strength" example:"1"`
	Type         string  `json:"type" example:"related"`
	Label        string  `json:"label,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// GraphResponse wraps the public graph
type GraphResponse struct {
	Success bool `json:"success" example:"true"`
	Data    struct {
		Nodes       []Node       `json:"nodes"`
		Connections []Connection `json:"connections"`
	} `json:"data"`
}

// NodesResponse wraps every node
type NodesResponse struct {
	Success bool `json:"success" example:"true"`
	Data    struct {
		Nodes []Node `json:"nodes"`
	} `json:"data"`
}

// Project is one row of the projects tab
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Status      string   `json:"status" example:"active"`
	Featured    bool     `json:"featured"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	NodeID      string   `json:"nodeId,omitempty"`
}

// ProjectsResponse wraps the projects tab
type ProjectsResponse struct {
	Success bool `json:"success" example:"true"`
	Data    struct {
		Projects []Project `json:"projects"`
	} `json:"data"`
}

// StatusResponse wraps the latest status row
type StatusResponse struct {
	Success bool `json:"success" example:"true"`
	Data    struct {
		Status struct {
			ID          string `json:"id"`
			Status      string `json:"status" example:"Building things"`
			LearningNow string `json:"learningNow"`
			WorkingOn   string `json:"workingOn"`
			LastUpdated string `json:"lastUpdated"`
		} `json:"status"`
	} `json:"data"`
}

// Post is one blog post
type Post struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug" example:"building-a-mindscape"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content"`
	PublishedAt    string   `json:"publishedAt"`
	Link           string   `json:"link"`
	Thumbnail      *string  `json:"thumbnail" extensions:"x-nullable"`
	Tags           []string `json:"tags"`
	Author         string   `json:"author"`
	GUID           string   `json:"guid"`
	ContentSnippet string   `json:"contentSnippet"`
}

// PostsResponse is {posts} and, on failure, {error, posts: []}
type PostsResponse struct {
	Posts []Post `json:"posts"`
	Error string `json:"error,omitempty"`
}

// PostResponse is {post}
type PostResponse struct {
	Post Post `json:"post"`
}

// NowPlayingResponse is the current track, or {isPlaying:false}
type NowPlayingResponse struct {
	IsPlaying     bool   `json:"isPlaying"`
	Title         string `json:"title,omitempty"`
	Artist        string `json:"artist,omitempty"`
	Album         string `json:"album,omitempty"`
	AlbumImageURL string `json:"albumImageUrl,omitempty"`
	SongURL       string `json:"songUrl,omitempty"`
	Duration      int    `json:"duration,omitempty"`
	Progress      int    `json:"progress,omitempty"`
	Error         string `json:"error,omitempty"`
}

// RecentTrackResponse is the last played track
type RecentTrackResponse struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	AlbumImageURL string `json:"albumImageUrl"`
	SongURL       string `json:"songUrl"`
	Duration      int    `json:"duration"`
	PlayedAt      string `json:"playedAt"`
	Timestamp     int64  `json:"timestamp"`
}

// SpotifyAuthResponse carries the consent URL
type SpotifyAuthResponse struct {
	AuthURL      string   `json:"authUrl"`
	RedirectURI  string   `json:"redirectUri"`
	Instructions []string `json:"instructions"`
}

// VideosResponse is {success, videos, count}
type VideosResponse struct {
	Success bool `json:"success"`
	Videos  []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Thumbnail   string `json:"thumbnail"`
		PublishedAt string `json:"publishedAt"`
		ViewCount   string `json:"viewCount" example:"1024"`
		LikeCount   string `json:"likeCount" example:"64"`
		VideoURL    string `json:"videoUrl"`
	} `json:"videos"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// ReelsResponse is {reels}
type ReelsResponse struct {
	Reels []struct {
		ID           string `json:"id"`
		Caption      string `json:"caption"`
		MediaURL     string `json:"mediaUrl"`
		ThumbnailURL string `json:"thumbnailUrl"`
		Permalink    string `json:"permalink"`
		Timestamp    string `json:"timestamp"`
	} `json:"reels"`
	Error string `json:"error,omitempty"`
}

// ReadyResponse reports which integrations have credentials
type ReadyResponse struct {
	Status       string `json:"status" example:"ready"`
	Integrations map[string]struct {
		Configured bool `json:"configured"`
	} `json:"integrations"`
}
