package domain

// Claims identifies the authenticated principal inside a signed token.
type Claims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClaimsFor builds the token payload for a user.
func ClaimsFor(u *User) Claims {
	return Claims{ID: u.ID, Name: u.Name, Email: u.Email}
}

// TokenPair is returned on login and refresh. Tokens are never persisted.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
