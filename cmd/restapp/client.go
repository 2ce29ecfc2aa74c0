package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RahulNewbie/rest-app/internal/relation"
)

// Client wraps HTTP calls to the restapp daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new restapp API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(serverURL, "/"),
		httpClient: &http.Client{
			// A cold daemon resolves every film reference before answering.
			Timeout: 2 * time.Minute,
		},
	}
}

// Movies fetches the movie table. Both the concatenated block stream and a
// single JSON array decode to the same rows.
func (c *Client) Movies() ([]relation.Row, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/movies/")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return decodeRows(resp.Body)
}

func decodeRows(r io.Reader) ([]relation.Row, error) {
	rows := []relation.Row{}
	dec := json.NewDecoder(r)
	for {
		var block []relation.Row
		err := dec.Decode(&block)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode movies: %w", err)
		}
		rows = append(rows, block...)
	}
}
