package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Empty(t *testing.T) {
	e := &Error{}
	assert.False(t, e.HasErrors())
	assert.Equal(t, "", e.Error())
}

func TestError_MissingAndValidation(t *testing.T) {
	e := &Error{
		Path:    "/etc/restapp/config.toml",
		Missing: []string{"GHIBLI_URL", "PORT: port is required"},
		Errors:  []string{"server.port: bad"},
	}
	assert.True(t, e.HasErrors())
	assert.Equal(t,
		"/etc/restapp/config.toml: unset variable GHIBLI_URL; unset variable PORT: port is required; server.port: bad",
		e.Error())
}

func TestError_NoPath(t *testing.T) {
	e := &Error{Errors: []string{"output.format: bad"}}
	assert.Equal(t, "config: output.format: bad", e.Error())
}

func TestError_As(t *testing.T) {
	var err error = &Error{Errors: []string{"x"}}
	var cfgErr *Error
	assert.True(t, errors.As(err, &cfgErr))
}
