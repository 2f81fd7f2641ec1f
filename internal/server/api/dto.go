package api

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"_id"`
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type onboardRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type verifyResetCodeRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}
