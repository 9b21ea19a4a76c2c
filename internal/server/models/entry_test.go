package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryType_Valid(t *testing.T) {
	for _, typ := range []EntryType{TypeFolder, TypeFile, TypeImage} {
		assert.True(t, typ.Valid(), typ)
	}
	for _, typ := range []EntryType{"", "Folder", "video", "dir"} {
		assert.False(t, typ.Valid(), typ)
	}
}

func TestEntry_IsFolder(t *testing.T) {
	assert.True(t, (&Entry{Type: TypeFolder}).IsFolder())
	assert.False(t, (&Entry{Type: TypeImage}).IsFolder())
}
