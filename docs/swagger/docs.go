// Package docs registers the OpenAPI document for the portfolio backend with swag.
//
// @title Portfolio Backend API
// @version 1.0.0
// @description Companion API for the portfolio site: contact form, Mindscape graph, blog feed and media widgets.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and an admin JWT
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["system"], "summary": "Liveness", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {"tags": ["system"], "summary": "Readiness with per-integration configuration flags", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.ReadyResponse"}}}}
        },
        "/api/contact": {
            "post": {"tags": ["contact"], "summary": "Submit the contact form", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/docs.ContactRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.MessageResponse"}},
                    "400": {"description": "Missing or invalid fields", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}},
                    "500": {"description": "Failed to submit contact form", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/contact/test": {
            "get": {"tags": ["contact"], "summary": "Check the contact spreadsheet", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.MessageResponse"}},
                    "500": {"description": "Google Sheets connection failed", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/mindscape/public": {
            "get": {"tags": ["mindscape"], "summary": "Public Mindscape graph", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "q", "in": "query"},
                    {"type": "string", "description": "Node type, or all", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.GraphResponse"}},
                    "500": {"description": "Failed to fetch mindscape data", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}},
                    "503": {"description": "Mindscape service not configured", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/mindscape/admin/all": {
            "get": {"tags": ["mindscape"], "summary": "Every Mindscape node", "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.NodesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/mindscape/projects": {
            "get": {"tags": ["mindscape"], "summary": "Projects tab", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.ProjectsResponse"}}}}
        },
        "/api/mindscape/status": {
            "get": {"tags": ["mindscape"], "summary": "Latest current_status row", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.StatusResponse"}},
                    "404": {"description": "Status not found", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/blog/posts": {
            "get": {"tags": ["blog"], "summary": "Blog posts", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.PostsResponse"}},
                    "500": {"description": "Failed to fetch blog posts", "schema": {"$ref": "#/definitions/docs.PostsResponse"}}
                }}
        },
        "/api/blog/posts/{slug}": {
            "get": {"tags": ["blog"], "summary": "One blog post", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Post slug", "name": "slug", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.PostResponse"}},
                    "404": {"description": "Post not found", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/spotify/now-playing": {
            "get": {"tags": ["spotify"], "summary": "Track playing on Spotify", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "isPlaying is false when nothing plays", "schema": {"$ref": "#/definitions/docs.NowPlayingResponse"}},
                    "500": {"description": "Error", "schema": {"$ref": "#/definitions/docs.NowPlayingResponse"}}
                }}
        },
        "/api/spotify/recently-played": {
            "get": {"tags": ["spotify"], "summary": "Last track played on Spotify", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.RecentTrackResponse"}},
                    "500": {"description": "Error", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/spotify/auth": {
            "get": {"tags": ["spotify"], "summary": "Spotify consent URL", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.SpotifyAuthResponse"}},
                    "500": {"description": "Spotify Client ID not configured", "schema": {"$ref": "#/definitions/docs.ErrorResponse"}}
                }}
        },
        "/api/spotify/callback": {
            "get": {"tags": ["spotify"], "summary": "Spotify consent callback", "produces": ["text/html"],
                "parameters": [{"type": "string", "description": "Authorization code", "name": "code", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "Page showing the refresh token"},
                    "400": {"description": "No authorization code"},
                    "500": {"description": "Token exchange failed"}
                }}
        },
        "/api/youtube/videos": {
            "get": {"tags": ["media"], "summary": "Latest YouTube uploads", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.VideosResponse"}},
                    "500": {"description": "Failed to fetch YouTube videos", "schema": {"$ref": "#/definitions/docs.VideosResponse"}}
                }}
        },
        "/api/instagram/reels": {
            "get": {"tags": ["media"], "summary": "Latest Instagram reels", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/docs.ReelsResponse"}},
                    "500": {"description": "Failed to fetch Instagram reels", "schema": {"$ref": "#/definitions/docs.ReelsResponse"}}
                }}
        }
    },
    "definitions": {
        "docs.ContactRequest": {"type": "object", "properties": {
            "name": {"type": "string", "maxLength": 200, "example": "Ada Lovelace"},
            "email": {"type": "string", "example": "ada@example.com"},
            "subject": {"type": "string", "maxLength": 300},
            "message": {"type": "string", "maxLength": 10000}
        }},
        "docs.MessageResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"}, "message": {"type": "string"}
        }},
        "docs.ErrorResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"}, "error": {"type": "string"}
        }},
        "docs.Node": {"type": "object", "properties": {
            "id": {"type": "string"}, "title": {"type": "string"}, "content": {"type": "string"},
            "type": {"type": "string", "enum": ["project", "concept", "idea", "resource", "note", "code"]},
            "tags": {"type": "array", "items": {"type": "string"}},
            "isPublic": {"type": "boolean"},
            "position": {"type": "object", "properties": {"x": {"type": "number"}, "y": {"type": "number"}, "z": {"type": "number"}}},
            "style": {"type": "object", "properties": {"color": {"type": "string"}, "size": {"type": "number"}}},
            "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}
        }},
        "docs.Connection": {"type": "object", "properties": {
            "id": {"type": "string"}, "sourceNodeId": {"type": "string"}, "targetNodeId": {"type": "string"},
            "strength": {"type": "number"}, "type": {"type": "string"}, "label": {"type": "string"}, "createdAt": {"type": "string"}
        }},
        "docs.GraphResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"},
            "data": {"type": "object", "properties": {
                "nodes": {"type": "array", "items": {"$ref": "#/definitions/docs.Node"}},
                "connections": {"type": "array", "items": {"$ref": "#/definitions/docs.Connection"}}
            }}
        }},
        "docs.NodesResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"},
            "data": {"type": "object", "properties": {"nodes": {"type": "array", "items": {"$ref": "#/definitions/docs.Node"}}}}
        }},
        "docs.ProjectsResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"},
            "data": {"type": "object", "properties": {"projects": {"type": "array", "items": {"type": "object"}}}}
        }},
        "docs.StatusResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"},
            "data": {"type": "object", "properties": {"status": {"type": "object"}}}
        }},
        "docs.Post": {"type": "object", "properties": {
            "title": {"type": "string"}, "slug": {"type": "string"}, "excerpt": {"type": "string"},
            "content": {"type": "string"}, "publishedAt": {"type": "string"}, "link": {"type": "string"},
            "thumbnail": {"type": "string", "x-nullable": true}, "tags": {"type": "array", "items": {"type": "string"}},
            "author": {"type": "string"}, "guid": {"type": "string"}, "contentSnippet": {"type": "string"}
        }},
        "docs.PostsResponse": {"type": "object", "properties": {
            "posts": {"type": "array", "items": {"$ref": "#/definitions/docs.Post"}}, "error": {"type": "string"}
        }},
        "docs.PostResponse": {"type": "object", "properties": {"post": {"$ref": "#/definitions/docs.Post"}}},
        "docs.NowPlayingResponse": {"type": "object", "properties": {
            "isPlaying": {"type": "boolean"}, "title": {"type": "string"}, "artist": {"type": "string"},
            "album": {"type": "string"}, "albumImageUrl": {"type": "string"}, "songUrl": {"type": "string"},
            "duration": {"type": "integer"}, "progress": {"type": "integer"}, "error": {"type": "string"}
        }},
        "docs.RecentTrackResponse": {"type": "object", "properties": {
            "title": {"type": "string"}, "artist": {"type": "string"}, "album": {"type": "string"},
            "albumImageUrl": {"type": "string"}, "songUrl": {"type": "string"}, "duration": {"type": "integer"},
            "playedAt": {"type": "string"}, "timestamp": {"type": "integer"}
        }},
        "docs.SpotifyAuthResponse": {"type": "object", "properties": {
            "authUrl": {"type": "string"}, "redirectUri": {"type": "string"},
            "instructions": {"type": "array", "items": {"type": "string"}}
        }},
        "docs.VideosResponse": {"type": "object", "properties": {
            "success": {"type": "boolean"}, "count": {"type": "integer"}, "error": {"type": "string"},
            "videos": {"type": "array", "items": {"type": "object", "properties": {
                "id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"},
                "thumbnail": {"type": "string"}, "publishedAt": {"type": "string"}, "viewCount": {"type": "string"},
                "likeCount": {"type": "string"}, "videoUrl": {"type": "string"}
            }}}
        }},
        "docs.ReelsResponse": {"type": "object", "properties": {
            "error": {"type": "string"},
            "reels": {"type": "array", "items": {"type": "object", "properties": {
                "id": {"type": "string"}, "caption": {"type": "string"}, "mediaUrl": {"type": "string"},
                "thumbnailUrl": {"type": "string"}, "permalink": {"type": "string"}, "timestamp": {"type": "string"}
            }}}
        }},
        "docs.ReadyResponse": {"type": "object", "properties": {
            "status": {"type": "string"},
            "integrations": {"type": "object", "additionalProperties": {"type": "object", "properties": {"configured": {"type": "boolean"}}}}
        }}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Portfolio Backend API",
	Description:      "Companion API for the portfolio site: contact form, Mindscape graph, blog feed and media widgets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
