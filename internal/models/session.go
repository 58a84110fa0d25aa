package models

// LoginResult is the body of a successful POST /auth/login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

// SessionState is the derived view of a browser's identity.
type SessionState struct {
	Token         string `json:"-"`
	User          *User  `json:"user,omitempty"`
	Role          Role   `json:"role,omitempty"`
	Authenticated bool   `json:"authenticated"`
	Loading       bool   `json:"loading"`
}
