package model

// AccessToken grants time-limited private access to one asset. A token is
// valid iff now < ExpiresAt; tokens lapse, they are never revoked early.
type AccessToken struct {
	Token     string `json:"token"`
	AssetID   string `json:"asset_id"`
	ExpiresAt int64  `json:"expires_at"`
	Ctime     int64  `json:"ctime"`
}
