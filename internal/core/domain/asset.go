package domain

import "time"

// AssetPurpose says what an uploaded file is used for.
type AssetPurpose string

const (
	PurposeAvatar       AssetPurpose = "avatar"
	PurposeProductImage AssetPurpose = "product-image"
	PurposePortfolio    AssetPurpose = "portfolio"
)

func (p AssetPurpose) Valid() bool {
	switch p {
	case PurposeAvatar, PurposeProductImage, PurposePortfolio:
		return true
	}
	return false
}

// AssetRef points at binary content hosted in external object storage.
type AssetRef struct {
	ID          string       `json:"id"                     bson:"_id"`
	OwnerID     string       `json:"owner_id"               bson:"owner_id"`
	Purpose     AssetPurpose `json:"purpose"                bson:"purpose"`
	URL         string       `json:"url"                    bson:"url"`
	ObjectKey   string       `json:"object_key,omitempty"   bson:"object_key,omitempty"`
	ContentType string       `json:"content_type,omitempty" bson:"content_type,omitempty"`
	SizeBytes   int64        `json:"size_bytes,omitempty"   bson:"size_bytes,omitempty"`
	Width       int          `json:"width,omitempty"        bson:"width,omitempty"`
	Height      int          `json:"height,omitempty"       bson:"height,omitempty"`
	CreatedAt   time.Time    `json:"created_at"             bson:"created_at"`
}
