// Package client provides typed wrappers over the HTTP JSON API, one call
// per logical operation. No retries, no caching: each call returns the
// parsed body or surfaces the transport/server error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"qa_platform/internal/domain/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API mounted at baseURL, e.g.
// "http://localhost:5001/api".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the uniform error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type QuestionList struct {
	Success   bool             `json:"success"`
	Questions []model.Question `json:"questions"`
	Total     int              `json:"total"`
}

type AuthResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type CreateQuestionRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags,omitempty"`
	UserID string   `json:"userId,omitempty"`
}

func (c *Client) ListQuestions(ctx context.Context) (*QuestionList, error) {
	var out QuestionList
	if err := c.doJSON(ctx, http.MethodGet, "/questions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	var out struct {
		Success  bool           `json:"success"`
		Question model.Question `json:"question"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/questions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Question, nil
}

func (c *Client) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	var out struct {
		Success  bool           `json:"success"`
		Question model.Question `json:"question"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/questions", req, &out); err != nil {
		return nil, err
	}
	return &out.Question, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
