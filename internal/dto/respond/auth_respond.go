package respond

// RegisterRespond echoes the pending registration awaiting confirmation.
type RegisterRespond struct {
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

// LoginRespond returns the profile plus a fresh token pair.
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TagName      string `json:"tag_name"`
	Avatar       string `json:"avatar"`
	Status       int8   `json:"status"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenRespond returns a refreshed token pair.
type TokenRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
