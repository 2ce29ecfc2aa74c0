// Package ghibli provides a client for the Studio Ghibli API.
package ghibli

// Film is a film record as returned by the films collection or a film URL.
type Film struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Person is a person record as returned by the people collection.
type Person struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Films []string `json:"films"` // film URLs
}

// PersonRefs is a person with the unresolved film references they appear in.
type PersonRefs struct {
	Name  string
	Films []string
}
