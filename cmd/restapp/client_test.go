package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulNewbie/rest-app/internal/relation"
)

const concatBody = "[\n   {\n      \"movie_title\": \"A\",\n      \"people\": \"X,Y\"\n   }\n]" +
	"[\n   {\n      \"movie_title\": \"Kiki\\u2019s\",\n      \"people\": \"\"\n   }\n]"

func TestDecodeRows_Concatenated(t *testing.T) {
	rows, err := decodeRows(strings.NewReader(concatBody))
	require.NoError(t, err)
	assert.Equal(t, []relation.Row{
		{MovieTitle: "A", People: "X,Y"},
		{MovieTitle: "Kiki’s", People: ""},
	}, rows)
}

func TestDecodeRows_Array(t *testing.T) {
	body := `[{"movie_title": "A", "people": "X"}, {"movie_title": "B", "people": ""}]` + "\n"
	rows, err := decodeRows(strings.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1].MovieTitle)
}

func TestDecodeRows_Empty(t *testing.T) {
	rows, err := decodeRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeRows_Garbage(t *testing.T) {
	_, err := decodeRows(strings.NewReader(concatBody + "<html>"))
	assert.Error(t, err)
}

func TestClient_Movies(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/movies/").
		ExpectGET().
		RespondBody("text/html; charset=utf-8", concatBody).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	rows, err := client.Movies()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestClient_Movies_ArrayFormat(t *testing.T) {
	srv := newMockServer(t).
		RespondJSON([]relation.Row{{MovieTitle: "A", People: "X"}}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	rows, err := client.Movies()
	require.NoError(t, err)
	assert.Equal(t, []relation.Row{{MovieTitle: "A", People: "X"}}, rows)
}

func TestClient_Movies_ServerError(t *testing.T) {
	srv := newMockServer(t).
		RespondError(http.StatusInternalServerError, "boom").
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Movies()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_Movies_ConnectionError(t *testing.T) {
	srv := newMockServer(t).Build()
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Movies()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
