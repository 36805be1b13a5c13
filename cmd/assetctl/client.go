package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type libraryClient struct {
	baseURL string
	user    string
	http    *http.Client
}

func newClient() *libraryClient {
	return &libraryClient{
		baseURL: serverURL(),
		user:    asUser(),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *libraryClient) do(method, path string, body any, v any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.Header.Set("X-Remote-User", c.user)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	if v != nil {
		return json.NewDecoder(resp.Body).Decode(v)
	}
	return nil
}

// getJSON performs a GET request and decodes the response.
func (c *libraryClient) getJSON(path string, v any) error {
	return c.do(http.MethodGet, path, nil, v)
}

// postJSON performs a POST request with a JSON body and decodes the response.
func (c *libraryClient) postJSON(path string, body any, v any) error {
	return c.do(http.MethodPost, path, body, v)
}
