package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stagepass/models"
)

// ErrRejected reports that the provider refused the request (bad credentials,
// unknown user, wrong code). Anything else is a transport or provider failure.
var ErrRejected = errors.New("identity provider rejected the request")

// Gateway is the hosted identity provider: sign-up, sign-in, confirmation and
// password-reset flows. Token verification happens against its published key
// set, not through this interface.
type Gateway interface {
	SignUp(ctx context.Context, req models.SignupRequest) error
	SignIn(ctx context.Context, username, password string) (string, error)
	ConfirmSignUp(ctx context.Context, username, code string) error
	ForgotPassword(ctx context.Context, username string) error
	ConfirmForgotPassword(ctx context.Context, username, password, code string) error
}

// Client talks JSON over HTTP to the provider.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("identity provider returned %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return ErrRejected
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) SignUp(ctx context.Context, req models.SignupRequest) error {
	return c.post(ctx, "/signup", req, nil)
}

func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.post(ctx, "/signin", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ConfirmSignUp(ctx context.Context, username, code string) error {
	return c.post(ctx, "/confirm-signup", map[string]string{
		"username": username,
		"code":     code,
	}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, username string) error {
	return c.post(ctx, "/forgot-password", map[string]string{
		"username": username,
	}, nil)
}

func (c *Client) ConfirmForgotPassword(ctx context.Context, username, password, code string) error {
	return c.post(ctx, "/confirm-forgot-password", map[string]string{
		"username": username,
		"password": password,
		"code":     code,
	}, nil)
}
