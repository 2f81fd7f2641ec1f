package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient talks JSON to the account API. It does not retry. With a zero
// timeout only the transport defaults apply.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("module", "api_client"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, OpLogin, http.MethodPost, common.PathLogin, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.do(ctx, OpRegister, http.MethodPost, common.PathRegister, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Onboard(ctx context.Context, req OnboardRequest) error {
	return c.do(ctx, OpOnboard, http.MethodPost, common.PathOnboard, "", req, nil)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.do(ctx, OpForgotPassword, http.MethodPost, common.PathForgotPassword, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyResetCode(ctx context.Context, userID string, req VerifyResetCodeRequest) (*ResetTokenResponse, error) {
	var resp ResetTokenResponse
	path := fmt.Sprintf(common.PathResetPasswordFmt, url.PathEscape(userID))
	if err := c.do(ctx, OpVerifyResetCode, http.MethodPost, path, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, userID, token string, req ResetPasswordRequest) error {
	path := fmt.Sprintf(common.PathResetPasswordFmt, url.PathEscape(userID))
	return c.do(ctx, OpResetPassword, http.MethodPut, path, token, req, nil)
}

// do sends body as JSON and decodes a 2xx response into out (skipped when out
// is nil). Failures come back as *RequestError.
func (c *HTTPClient) do(ctx context.Context, op, method, path, bearer string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &RequestError{Op: op, Message: FallbackMessage(op), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &RequestError{Op: op, Message: FallbackMessage(op), Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	log := c.logger.With("op", op, "request_id", requestID)
	log.Debug(ctx, "sending request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &RequestError{Op: op, Message: ErrUnavailable.Error(), Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := c.mapError(op, resp)
		log.Info(ctx, "request rejected", "error", reqErr.Detailed())
		return reqErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn(ctx, "malformed response body", "error", err)
		return &RequestError{Op: op, Status: resp.StatusCode, Message: FallbackMessage(op), Err: err}
	}
	return nil
}

// mapError builds a RequestError from a non-2xx response. The "message" field
// of a JSON body wins; anything else falls back to the op's default text.
func (c *HTTPClient) mapError(op string, resp *http.Response) *RequestError {
	re := &RequestError{Op: op, Status: resp.StatusCode, Message: FallbackMessage(op)}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		re.Err = ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		re.Err = ErrUnavailable
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return re
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return re
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		re.Message = msg
	}
	return re
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
