package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GoTrueClient talks to a hosted GoTrue-compatible auth endpoint using a
// service-role key. Admin calls never touch the caller's own session.
type GoTrueClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewGoTrueClient(baseURL, serviceKey string) *GoTrueClient {
	return &GoTrueClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type gotrueUser struct {
	ID string `json:"id"`
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e *gotrueError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	}
	return ""
}

func (c *GoTrueClient) CreateUser(p CreateUserParams) (uuid.UUID, error) {
	body := map[string]interface{}{
		"email":         p.Email,
		"password":      p.Password,
		"email_confirm": p.EmailConfirmed,
		"user_metadata": p.Metadata,
	}

	var user gotrueUser
	if err := c.do(http.MethodPost, "/admin/users", body, &user); err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("identity service returned malformed user id %q: %w", user.ID, err)
	}
	return id, nil
}

func (c *GoTrueClient) UpdateUser(id uuid.UUID, p UpdateUserParams) error {
	body := map[string]interface{}{}
	if p.Email != "" {
		body["email"] = p.Email
	}
	if p.Password != "" {
		body["password"] = p.Password
	}
	if len(body) == 0 {
		return nil
	}
	return c.do(http.MethodPut, "/admin/users/"+id.String(), body, nil)
}

func (c *GoTrueClient) DeleteUser(id uuid.UUID) error {
	return c.do(http.MethodDelete, "/admin/users/"+id.String(), nil, nil)
}

func (c *GoTrueClient) VerifyPassword(email, password string) (uuid.UUID, error) {
	body := map[string]interface{}{"email": email, "password": password}

	var resp struct {
		User gotrueUser `json:"user"`
	}
	if err := c.do(http.MethodPost, "/token?grant_type=password", body, &resp); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}

	id, err := uuid.Parse(resp.User.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("identity service returned malformed user id %q: %w", resp.User.ID, err)
	}
	return id, nil
}

func (c *GoTrueClient) do(method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode identity request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr gotrueError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		msg := apiErr.text()
		if resp.StatusCode == http.StatusUnprocessableEntity || strings.Contains(strings.ToLower(msg), "already been registered") {
			return ErrEmailTaken
		}
		if resp.StatusCode == http.StatusNotFound {
			return ErrUserNotFound
		}
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("identity service: %s", msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode identity response: %w", err)
		}
	}
	return nil
}
