package models

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the post-login welcome block: who logged in and the
// account they came back to.
type LoginResponse struct {
	FullName      string `json:"fullName"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}
