package image

import "time"

// File is the metadata record behind one stored upload. Originals live under
// uploads/images/{id}.{ext}, derived thumbnails under uploads/thumbs/{id}.{ext}.
type File struct {
	ID         string    `json:"id"`
	Ext        string    `json:"ext"`
	Size       int64     `json:"size"`
	OwnerID    string    `json:"ownerId"`
	UploadedAt time.Time `json:"uploadedAt"`
}
