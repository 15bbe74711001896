package model

// AdminLoginRequest is the admin login form payload.
type AdminLoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
