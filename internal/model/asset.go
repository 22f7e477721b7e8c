package model

// Asset is the mutable logical resource. ObjectStorageKey and ETag always
// describe the same stored bytes; no operation updates one without the other.
type Asset struct {
	ID               string `json:"id"`
	ObjectStorageKey string `json:"object_storage_key"`
	Filename         string `json:"filename"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
	ETag             string `json:"etag"`
	IsPrivate        bool   `json:"is_private"`
	CurrentVersionID string `json:"current_version_id,omitempty"`
	Ctime            int64  `json:"ctime"`
	Mtime            int64  `json:"mtime"`
}
