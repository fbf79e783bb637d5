package db

// Credential is the persisted session record: the token pair, the
// serialized user record, and the role tag. Exactly one row (id 1)
// exists at a time, so a single upsert or delete replaces or removes
// all four fields together.
type Credential struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         string `json:"user,omitempty"`
	Role         string `json:"role,omitempty"`
}
