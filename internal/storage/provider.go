// Package storage defines read-only access to the article source tree.
package storage

import "time"

// SourceInfo describes one .md file under the content root.
type SourceInfo struct {
	Path      string    `json:"path"` // relative to the content root
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for source tree reads. The pipeline never
// mutates the source tree; rendered output goes elsewhere.
type Provider interface {
	// List returns info for every .md file under dir (relative to the root).
	List(dir string) ([]SourceInfo, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
}
