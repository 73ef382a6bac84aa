package valueobjects

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// ExcerptLength is the rune count kept for post excerpts
const ExcerptLength = 200

// Enclosure is a media attachment on a feed item
type Enclosure struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// BlogPost is a feed item reshaped for the site
type BlogPost struct {
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content"`
	PublishedAt    string     `json:"publishedAt"`
	Link           string     `json:"link"`
	Thumbnail      *string    `json:"thumbnail"`
	Tags           []string   `json:"tags"`
	Author         string     `json:"author,omitempty"`
	GUID           string     `json:"guid"`
	ContentSnippet string     `json:"contentSnippet"`
	Enclosure      *Enclosure `json:"enclosure"`
}

// SlugFromLink returns the last non-empty path segment of link
func SlugFromLink(link string) string {
	path := link
	if u, err := url.Parse(link); err == nil && u.Path != "" {
		path = u.Path
	}
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" {
			return s
		}
	}
	return ""
}

// Excerpt truncates s to ExcerptLength runes
func Excerpt(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= ExcerptLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:ExcerptLength])
}

// FindPost looks a post up by slug
func FindPost(posts []BlogPost, slug string) (BlogPost, bool) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return BlogPost{}, false
}
