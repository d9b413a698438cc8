package browser

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolasanchezz/kudos/internal/login"
)

func TestURLPattern(t *testing.T) {
	tests := []struct {
		pattern string
		url     string
		want    bool
	}{
		{"**/dashboard", "https://www.strava.com/dashboard", true},
		{"**/dashboard", "https://www.strava.com/login", false},
		{"**/dashboard", "https://www.strava.com/dashboard/extra", false},
		{"**/dashboard*", "https://www.strava.com/dashboard?ref=login", true},
		{"https://www.strava.com/athletes/*", "https://www.strava.com/athletes/42", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.url, func(t *testing.T) {
			g, err := compileURLPattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Match(tt.url))
		})
	}
}

func TestRoleSelector(t *testing.T) {
	assert.Contains(t, roleSelector(login.RoleButton), `input[type="submit"]`)
	assert.Equal(t, `[role="checkbox"]`, roleSelector("checkbox"))
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s := &session{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, s.closed)
}

func TestLookupScriptsShareHelpers(t *testing.T) {
	for name, js := range map[string]string{
		"label": findByLabelJS,
		"role":  findByRoleJS,
		"shown": isVisibleJS,
		"text":  findTextJS,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, js, "checkVisibility")
			assert.Contains(t, js, "const norm")
		})
	}
	assert.Contains(t, findTextJS, "'SCRIPT'")
	assert.Contains(t, findTextJS, "'NOSCRIPT'")
	assert.Contains(t, findTextJS, "'TEMPLATE'")
	assert.Contains(t, findByLabelJS, "toLowerCase")
}
