package models

type BranchResponse struct {
	IFSCCode string `json:"ifscCode"`
	BankName string `json:"bankName"`
}
