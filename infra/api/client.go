package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/infra/session"
)

// Client is a thin HTTP wrapper for the feed API.
// It handles base URL construction, bearer token injection, and envelope decoding.
type Client struct {
	baseURL       string
	tokenProvider session.TokenProvider
	http          *http.Client
}

// NewClient creates an API client rooted at baseURL (e.g. "https://host/api").
func NewClient(baseURL string, tp session.TokenProvider) *Client {
	return &Client{
		baseURL:       baseURL,
		tokenProvider: tp,
		http:          &http.Client{},
	}
}

// Get performs a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete sends an optional JSON body.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, body, out)
}

// PostFile uploads a single file as multipart/form-data under field.
func (c *Client) PostFile(ctx context.Context, path, field string, img domain.Image, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, img.Name))
	if img.ContentType != "" {
		h.Set("Content-Type", img.ContentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return fmt.Errorf("writing multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if body == nil {
		return c.do(ctx, method, path, nil, "", out)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(data), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	token, err := c.tokenProvider.AccessToken()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		return fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	reqID := ""
	if id, err := uuid.NewV4(); err == nil {
		reqID = id.String()
		req.Header.Set("X-Request-Id", reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Errorf("[api][%s] %s %s failed: %v", reqID, method, path, err)
		return fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	log.Debugf("[api][%s] %s %s -> %d (%d bytes)", reqID, method, path, resp.StatusCode, len(data))

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("API %s %s: %w", method, path, domain.ErrUnauthorized)
	}

	var env envelope
	decodeErr := json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
			apiErr.Status = env.Status
		} else {
			apiErr.Message = truncate(string(data), 200)
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("parsing response envelope: %w", decodeErr)
	}
	if !env.ok() {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Status: env.Status, Message: env.Message}
	}

	if meta, ok := out.(*envelopeMeta); ok {
		meta.Message = env.Message
		meta.Status = env.Status
		out = meta.Data
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("parsing response data: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
