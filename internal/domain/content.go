package domain

import "time"

type ContentType string

const (
	ContentVideo ContentType = "Video"
	ContentImage ContentType = "Image"
)

func (t ContentType) Valid() bool {
	return t == ContentVideo || t == ContentImage
}

// FitnessContent is an item in the workout/media library.
type FitnessContent struct {
	ID           string      `bson:"_id" json:"id"`
	Title        string      `bson:"title" json:"title"`
	Type         ContentType `bson:"type" json:"type"`
	Description  string      `bson:"description,omitempty" json:"description,omitempty"`
	ThumbnailURL string      `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"` // Absolute URL or storage object key
	UploadDate   time.Time   `bson:"uploadDate" json:"uploadDate"`
}
