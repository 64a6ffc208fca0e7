package domain

import (
	"path/filepath"
	"strings"
)

// Upload is a received multipart file, fully read into memory (the global
// size cap bounds it before it gets here).
type Upload struct {
	Filename string
	Data     []byte
}

// Ext returns the lowercased filename extension including the dot ("" when absent).
func (u Upload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}
