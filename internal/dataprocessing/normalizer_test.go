package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rostercli/internal/errors"
	"rostercli/pkg/contracts/domain"
)

func TestNormalize(t *testing.T) {
	ctx := context.Background()
	normalizer := NewNormalizer(nil)

	t.Run("full row", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Profile Link", "Platform", "Followers", "Commercials", "Avg Views", "Phone", "Email", "State", "Category", "Sex", "Age"},
			{"Alice", "https://instagram.com/alice", "IG", "10.5K", "$500", "20K", "123456", "alice@example.com", "Goa", "Fashion", "F", "25"},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)

		p := profiles[0]
		assert.Equal(t, "Alice", p.Name)
		assert.Equal(t, "https://instagram.com/alice", p.ProfileLink)
		assert.Equal(t, "Instagram", p.Platform)
		assert.Equal(t, float64(10500), p.Followers)
		assert.Equal(t, "10.5K", p.FollowersDisplay)
		assert.Equal(t, "$500", p.Commercials)
		assert.Equal(t, "20K", p.Range)
		assert.Equal(t, "123456", p.PhoneNumber)
		assert.Equal(t, "alice@example.com", p.Email)
		assert.Equal(t, "Goa", p.State)
		assert.Equal(t, "Fashion", p.Category)
		assert.Equal(t, "F", p.Sex)
		assert.Equal(t, "25", p.Age)
		assert.Equal(t, domain.StatusPending, p.Status)
	})

	t.Run("platform detected from link when field absent", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Profile Link", "Followers"},
			{"Bob", "https://www.tiktok.com/@bob", "5000"},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "TikTok", profiles[0].Platform)
	})

	t.Run("header resolved link is trimmed", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Profile Link"},
			{"Carol", "  https://instagram.com/carol  "},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "https://instagram.com/carol", profiles[0].ProfileLink)
	})

	t.Run("fallback scanned link kept verbatim", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Column B"},
			{"Dave", "  https://instagram.com/dave  "},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		// No header matched, so the cell is taken exactly as found,
		// padding included.
		assert.Equal(t, "  https://instagram.com/dave  ", profiles[0].ProfileLink)
		assert.Equal(t, "Instagram", profiles[0].Platform)
	})

	t.Run("fallback scan recognizes handles", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Column B"},
			{"Erin", "@erin_on_ig"},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "@erin_on_ig", profiles[0].ProfileLink)
		assert.Equal(t, "Instagram", profiles[0].Platform)
	})

	t.Run("empty rows skipped", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Followers"},
			{"", ""},
			{"Frank", "1000"},
			{},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "Frank", profiles[0].Name)
	})

	t.Run("malformed row still produces a record", func(t *testing.T) {
		rows := [][]string{
			{"Name", "Followers"},
			{"???", "not a number"},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, float64(0), profiles[0].Followers)
		assert.Equal(t, "0", profiles[0].FollowersDisplay)
		assert.Equal(t, "", profiles[0].Platform)
	})

	t.Run("ids unique within batch", func(t *testing.T) {
		rows := [][]string{
			{"Name"},
			{"A"}, {"B"}, {"C"},
		}

		profiles, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		require.Len(t, profiles, 3)

		seen := make(map[string]bool)
		for _, p := range profiles {
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
	})

	t.Run("ids unique across back-to-back batches", func(t *testing.T) {
		rows := [][]string{{"Name"}, {"A"}}

		first, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		second, err := normalizer.Normalize(ctx, rows)
		require.NoError(t, err)
		assert.NotEqual(t, first[0].ID, second[0].ID)
	})

	t.Run("header only sheet rejected", func(t *testing.T) {
		_, err := normalizer.Normalize(ctx, [][]string{{"Name", "Followers"}})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})
}
