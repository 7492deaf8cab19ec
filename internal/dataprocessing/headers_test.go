package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveValue(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		row        []string
		candidates []string
		want       string
	}{
		{
			name:       "exact match",
			headers:    []string{"name", "followers"},
			row:        []string{"Alice", "1000"},
			candidates: []string{"name"},
			want:       "Alice",
		},
		{
			name:       "header contains candidate",
			headers:    []string{"profile name", "ig link"},
			row:        []string{"Bob", "https://instagram.com/bob"},
			candidates: []string{"name"},
			want:       "Bob",
		},
		{
			name:       "candidate contains header",
			headers:    []string{"phone"},
			row:        []string{"12345"},
			candidates: []string{"phone number"},
			want:       "12345",
		},
		{
			name:       "first candidate wins over better later match",
			headers:    []string{"subscriber count", "followers"},
			row:        []string{"500", "900"},
			candidates: []string{"followers", "subscribers"},
			// "subscriber count" does not match "followers"; the followers
			// column wins for the first candidate.
			want: "900",
		},
		{
			name:       "candidate order decides ambiguous headers",
			headers:    []string{"rate", "price"},
			row:        []string{"100 USD", "200 USD"},
			candidates: []string{"price", "rate"},
			want:       "200 USD",
		},
		{
			name:       "empty cell treated as no match",
			headers:    []string{"name", "full name"},
			row:        []string{"   ", "Carol"},
			candidates: []string{"name"},
			want:       "Carol",
		},
		{
			name:       "value trimmed",
			headers:    []string{"email"},
			row:        []string{"  a@b.com  "},
			candidates: []string{"email"},
			want:       "a@b.com",
		},
		{
			name:       "row shorter than headers",
			headers:    []string{"name", "email"},
			row:        []string{"Dave"},
			candidates: []string{"email"},
			want:       "",
		},
		{
			name:       "no match returns empty",
			headers:    []string{"name", "followers"},
			row:        []string{"Eve", "100"},
			candidates: []string{"commercials", "rate"},
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveValue(tt.headers, tt.row, tt.candidates)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHeaders(t *testing.T) {
	got := NormalizeHeaders([]string{"  Profile Name ", "IG LINK", ""})
	assert.Equal(t, []string{"profile name", "ig link", ""}, got)
}
