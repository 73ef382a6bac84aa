package valueobjects

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugFromLink(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://shirokokun.substack.com/p/building-in-public", "building-in-public"},
		{"https://shirokokun.substack.com/p/trailing-slash/", "trailing-slash"},
		{"https://shirokokun.substack.com/p/with-query?utm_source=rss", "with-query"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugFromLink(tt.link))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("  short  "))

	long := strings.Repeat("é", 250)
	got := Excerpt(long)
	assert.Equal(t, ExcerptLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestFindPost(t *testing.T) {
	posts := []BlogPost{{Slug: "a"}, {Slug: "b", Title: "B"}}

	got, ok := FindPost(posts, "b")
	assert.True(t, ok)
	assert.Equal(t, "B", got.Title)

	_, ok = FindPost(posts, "c")
	assert.False(t, ok)
}

func TestBlogPost_ThumbnailEncoding(t *testing.T) {
	cover := "https://cdn.example.com/cover.jpg"
	tests := []struct {
		name      string
		thumbnail *string
		want      string
	}{
		{"no image is null", nil, `"thumbnail":null`},
		{"image url", &cover, `"thumbnail":"https://cdn.example.com/cover.jpg"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(BlogPost{Title: "t", Thumbnail: tt.thumbnail})

			require.NoError(t, err)
			assert.Contains(t, string(raw), tt.want)
		})
	}
}
