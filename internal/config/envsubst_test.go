package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("RESTAPP_T_URL", "http://films.local/")
	t.Setenv("RESTAPP_T_EMPTY", "")
	t.Setenv("RESTAPP_T_PORT", "9000")

	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{
			name: "plain reference",
			in:   `base_url = "${RESTAPP_T_URL}"`,
			want: `base_url = "http://films.local/"`,
		},
		{
			name:        "unset reference stays in place",
			in:          `base_url = "${RESTAPP_T_NEVER_SET}"`,
			want:        `base_url = "${RESTAPP_T_NEVER_SET}"`,
			wantMissing: []string{"RESTAPP_T_NEVER_SET"},
		},
		{
			name: "empty value is still a value",
			in:   `file = "${RESTAPP_T_EMPTY}"`,
			want: `file = ""`,
		},
		{
			name: "default used when empty",
			in:   `port = ${RESTAPP_T_EMPTY:-8000}`,
			want: `port = 8000`,
		},
		{
			name: "default used when unset",
			in:   `port = ${RESTAPP_T_NEVER_SET:-8000}`,
			want: `port = 8000`,
		},
		{
			name: "value beats default",
			in:   `port = ${RESTAPP_T_PORT:-8000}`,
			want: `port = 9000`,
		},
		{
			name:        "required and empty reports message",
			in:          `base_url = "${RESTAPP_T_EMPTY:? upstream url is required }"`,
			want:        `base_url = "${RESTAPP_T_EMPTY:? upstream url is required }"`,
			wantMissing: []string{"RESTAPP_T_EMPTY: upstream url is required"},
		},
		{
			name: "required and set",
			in:   `port = ${RESTAPP_T_PORT:?port}`,
			want: `port = 9000`,
		},
		{
			name:        "several references on one line",
			in:          `x = "${RESTAPP_T_PORT}/${RESTAPP_T_NEVER_SET}/${RESTAPP_T_EMPTY:-d}"`,
			want:        `x = "9000/${RESTAPP_T_NEVER_SET}/d"`,
			wantMissing: []string{"RESTAPP_T_NEVER_SET"},
		},
		{
			name: "not a reference",
			in:   `x = "$RESTAPP_T_PORT ${1BAD}"`,
			want: `x = "$RESTAPP_T_PORT ${1BAD}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
