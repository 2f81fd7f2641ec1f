package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return badRequest("Username and password are required")
	}

	user, token, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.Request().Context(), "Logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, loginResponse{ID: user.ID, Token: token, Email: user.Email, Phone: user.Phone})
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	sess, err := s.users.Register(c.Request().Context(), req.Email, req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{SessionID: sess.ID, UserID: sess.UserID})
}

func (s *Server) onboard(c echo.Context) error {
	var req onboardRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.UserID == "" || req.SessionID == "" || req.Code == "" {
		return badRequest("userId, sessionId and code are required")
	}

	if err := s.users.Onboard(c.Request().Context(), req.UserID, req.SessionID, req.Code); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Account verified"})
}

func (s *Server) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	sess, err := s.users.ForgotPassword(c.Request().Context(), req.Email, req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{SessionID: sess.ID, UserID: sess.UserID})
}

// userID returns the unescaped :userId path parameter.
func userID(c echo.Context) (string, error) {
	id, err := url.PathUnescape(c.Param("userId"))
	if err != nil || id == "" {
		return "", badRequest("Invalid user id")
	}
	return id, nil
}

func (s *Server) verifyResetCode(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req verifyResetCodeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if req.SessionID == "" || req.Code == "" {
		return badRequest("sessionId and code are required")
	}

	token, err := s.users.VerifyResetCode(c.Request().Context(), id, req.SessionID, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) resetPassword(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	token := bearerToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing reset token")
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	if err := s.users.ResetPassword(c.Request().Context(), id, token, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated"})
}
