package models

import "time"

// EntryType is the kind of a file entry.
type EntryType string

const (
	TypeFolder EntryType = "folder"
	TypeFile   EntryType = "file"
	TypeImage  EntryType = "image"
)

// Valid reports whether t is one of the accepted entry types.
func (t EntryType) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// Entry is a node of a user's file hierarchy.
//
// ParentID is 0 for top-level entries. LocalPath is the blob locator and is
// empty for folders. Size is the decoded content length; it is only known
// on the entry returned by a create and is not stored.
type Entry struct {
	ID        int64
	UserID    int64
	Name      string
	Type      EntryType
	IsPublic  bool
	ParentID  int64
	LocalPath string
	Size      int64
	CreatedAt time.Time
}

// IsFolder reports whether the entry can hold children.
func (e *Entry) IsFolder() bool {
	return e.Type == TypeFolder
}
