package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validUpsert() UpsertPlayerRequest {
	return UpsertPlayerRequest{
		Name:          "Alice",
		DUPR:          3.5,
		Phone:         "555-0100",
		PlayTimes:     []string{PlayTimeMorning, PlayTimeNight},
		PlayLocations: "Central Park Courts",
	}
}

func TestUpsertPlayerRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validUpsert()
		assert.Empty(t, req.Validate())
	})

	t.Run("empty play times are allowed", func(t *testing.T) {
		req := validUpsert()
		req.PlayTimes = nil
		assert.Empty(t, req.Validate())
	})

	t.Run("name required", func(t *testing.T) {
		req := validUpsert()
		req.Name = "   "
		errs := req.Validate()
		assert.Contains(t, errs, "name")
	})

	t.Run("phone required", func(t *testing.T) {
		req := validUpsert()
		req.Phone = ""
		errs := req.Validate()
		assert.Contains(t, errs, "phone")
	})

	t.Run("play locations required", func(t *testing.T) {
		req := validUpsert()
		req.PlayLocations = ""
		errs := req.Validate()
		assert.Contains(t, errs, "play_locations")
	})

	t.Run("rating bounds", func(t *testing.T) {
		cases := []struct {
			dupr float64
			ok   bool
		}{
			{1.9, false},
			{2.0, true},
			{3.7, true},
			{5.0, true},
			{5.1, false},
			{0, false},
		}
		for _, tc := range cases {
			req := validUpsert()
			req.DUPR = tc.dupr
			errs := req.Validate()
			if tc.ok {
				assert.NotContains(t, errs, "dupr", "dupr=%v", tc.dupr)
			} else {
				assert.Contains(t, errs, "dupr", "dupr=%v", tc.dupr)
			}
		}
	})

	t.Run("unknown play time rejected", func(t *testing.T) {
		req := validUpsert()
		req.PlayTimes = []string{PlayTimeMorning, "midnight"}
		errs := req.Validate()
		assert.Contains(t, errs, "play_times")
	})
}

func TestPlayerProfilePublic(t *testing.T) {
	profile := PlayerProfile{
		UserID:        "alice",
		Name:          "Alice",
		DUPR:          4.2,
		Phone:         "555-0100",
		Email:         "alice@example.com",
		PlayTimes:     []string{PlayTimeNoon},
		PlayLocations: "Riverside Courts",
	}

	pub := profile.Public()
	assert.Equal(t, "alice", pub.UserID)
	assert.Equal(t, 4.2, pub.DUPR)
	assert.Equal(t, "Riverside Courts", pub.PlayLocations)
}
