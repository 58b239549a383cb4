package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is what a successful login returns. AuthToken is opaque to
// the client; only its expiry is a contract.
type LoginResponse struct {
	Name      string `json:"name"`
	Role      int64  `json:"role"`
	AuthToken string `json:"auth_token"`
}
