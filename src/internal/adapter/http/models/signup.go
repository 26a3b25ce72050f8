package models

// SignupRequest carries the six caller-supplied registration fields.
// Field validation lives in the registry engine, which owns the rule
// order and the result codes; controllers pass the request through
// untouched so every caller sees the identical rule chain.
type SignupRequest struct {
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

type SignupResponse struct {
	AccountNumber string `json:"accountNumber"`
	Username      string `json:"username"`
	BankName      string `json:"bankName"`
}
