package models

import (
	"time"
)

// Memory describes one stored media file. It is derived from the storage
// directory on every listing; nothing about it is persisted separately.
type Memory struct {
	Filename string    `json:"filename"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Date     string    `json:"date"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"-"`
}

// Media type values reported in listings.
const (
	TypeImage   = "image"
	TypeVideo   = "video"
	TypeUnknown = "unknown"
)
