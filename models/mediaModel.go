package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaAsset records an uploaded file by content hash so identical files are
// stored once. Refs counts the artworks and messages using it; the file is
// destroyed when the last one lets go.
type MediaAsset struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Hash       string             `bson:"hash" json:"hash"`
	PublicID   string             `bson:"publicId" json:"publicId"`
	URL        string             `bson:"url" json:"url"`
	Folder     string             `bson:"folder,omitempty" json:"folder,omitempty"`
	Filename   string             `bson:"filename,omitempty" json:"filename,omitempty"`
	Bytes      int64              `bson:"bytes" json:"bytes"`
	Refs       int64              `bson:"refs" json:"refs"`
	UploadedBy string             `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
