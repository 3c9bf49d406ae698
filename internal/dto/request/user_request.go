package request

// UpdateUserInfoRequest edits the caller's own profile. Empty fields are
// left unchanged; TagName uniqueness is checked case-insensitively.
type UpdateUserInfoRequest struct {
	UserId     string `json:"user_id" binding:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	TagName    string `json:"tag_name"`
	Avatar     string `json:"avatar"`
	ShowStatus *bool  `json:"show_status"`
}

// SearchUserRequest looks a user up by tag name.
type SearchUserRequest struct {
	TagName string `json:"tag_name" binding:"required"`
}
