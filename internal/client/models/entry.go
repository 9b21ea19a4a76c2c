// Package models defines what the CLI receives from and sends to the server.
package models

import (
	"fmt"
	"strings"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// Entry is the server projection of a file, image or folder.
type Entry struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID int64  `json:"parentId"`
}

// String renders the entry as one listing line.
func (e *Entry) String() string {
	visibility := "private"
	if e.IsPublic {
		visibility = "public"
	}
	name := e.Name
	if e.Type == TypeFolder {
		name += "/"
	}
	return fmt.Sprintf("%6d  %-6s  %-7s  %s", e.ID, e.Type, visibility, name)
}

// NewEntry is an upload request. Nil fields are left out of the request so
// the server applies its defaults. Data carries base64 text.
type NewEntry struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ParentID *int64  `json:"parentId,omitempty"`
	IsPublic *bool   `json:"isPublic,omitempty"`
	Data     *string `json:"data,omitempty"`
}

// Status mirrors GET /status.
type Status struct {
	CacheAlive bool `json:"cacheAlive"`
	StoreAlive bool `json:"storeAlive"`
}

// Stats mirrors GET /stats.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Table renders entries one per line, or a placeholder for an empty folder.
func Table(entries []*Entry) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}
