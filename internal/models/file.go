// Package models defines the types shared between storage and its consumers.
package models

import "time"

// FileMetadata describes one markdown file in a flat directory.
type FileMetadata struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
