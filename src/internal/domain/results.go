package domain

// RegistrationResult is the outcome of one registration attempt. Exactly
// one code is produced per attempt; the rule chain short-circuits on the
// first failure.
type RegistrationResult string

const (
	RegistrationSuccess              RegistrationResult = "SUCCESS"
	RegistrationInvalidAccountNumber RegistrationResult = "INVALID_ACCOUNT_NUMBER"
	RegistrationInvalidIFSCCode      RegistrationResult = "INVALID_IFSC_CODE"
	RegistrationInvalidEmail         RegistrationResult = "INVALID_EMAIL"
	RegistrationAccountNumberExists  RegistrationResult = "ACCOUNT_NUMBER_EXISTS"
	RegistrationUsernameExists       RegistrationResult = "USERNAME_EXISTS"
	RegistrationEmailExists          RegistrationResult = "EMAIL_EXISTS"
	RegistrationIFSCNotFound         RegistrationResult = "IFSC_NOT_FOUND"
	RegistrationEmptyFields          RegistrationResult = "EMPTY_FIELDS"
)

// Message maps the code to its fixed display string: "SUCCESS" or an
// "ERROR: "-prefixed message.
func (r RegistrationResult) Message() string {
	switch r {
	case RegistrationSuccess:
		return "SUCCESS"
	case RegistrationInvalidAccountNumber:
		return "ERROR: Invalid account number format. Must be 10-12 digits."
	case RegistrationInvalidIFSCCode:
		return "ERROR: Invalid IFSC code format. Must be 4 letters + 7 digits."
	case RegistrationInvalidEmail:
		return "ERROR: Invalid email format."
	case RegistrationAccountNumberExists:
		return "ERROR: Account number already exists."
	case RegistrationUsernameExists:
		return "ERROR: Username already exists."
	case RegistrationEmailExists:
		return "ERROR: Email already registered."
	case RegistrationIFSCNotFound:
		return "ERROR: IFSC code not found in our bank network."
	case RegistrationEmptyFields:
		return "ERROR: All fields are required."
	default:
		return "ERROR: Unknown error occurred."
	}
}

// LoginResult is the outcome of one credential check. User-not-found,
// wrong password and inactive account all collapse to
// LoginInvalidCredentials so callers cannot probe for usernames.
type LoginResult string

const (
	LoginSuccess            LoginResult = "SUCCESS"
	LoginInvalidCredentials LoginResult = "INVALID_CREDENTIALS"
	LoginEmptyFields        LoginResult = "EMPTY_FIELDS"
)

func (r LoginResult) Message() string {
	switch r {
	case LoginSuccess:
		return "SUCCESS"
	case LoginInvalidCredentials:
		return "ERROR: Credentials not correct"
	case LoginEmptyFields:
		return "ERROR: All fields are required."
	default:
		return "ERROR: Unknown error occurred."
	}
}
