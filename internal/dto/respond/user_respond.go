package respond

// UserInfoRespond is the public view of a user. Status is forced to
// offline when the user hides their presence.
type UserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TagName   string `json:"tag_name"`
	Avatar    string `json:"avatar"`
	Status    int8   `json:"status"`
}
