package model

// AssetVersion is an immutable snapshot produced by publish. Every field is
// frozen at creation; the bytes behind ObjectStorageKey never change.
type AssetVersion struct {
	ID               string `json:"id"`
	AssetID          string `json:"asset_id"`
	ObjectStorageKey string `json:"object_storage_key"`
	ETag             string `json:"etag"`
	Ctime            int64  `json:"ctime"`
}
