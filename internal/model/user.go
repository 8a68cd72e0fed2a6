package model

// GitHubUser holds the persisted GitHub identity. Empty fields mean unset.
type GitHubUser struct {
	Login     string
	Name      string
	AvatarURL string
	Token     string
}

// IsSignedIn returns true if an access token is present
func (u GitHubUser) IsSignedIn() bool {
	return u.Token != ""
}

// DisplayName returns the full name when known, falling back to the login
func (u GitHubUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}
