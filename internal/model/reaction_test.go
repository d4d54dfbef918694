package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReaction(t *testing.T) {
	up := ReactionUp
	down := ReactionDown
	empty := ReactionNone
	noneLiteral := Reaction("none")
	sideways := Reaction("sideways")
	upper := Reaction("UP")

	tests := []struct {
		name    string
		input   *Reaction
		want    Reaction
		wantErr error
	}{
		{"nil retracts", nil, ReactionNone, nil},
		{"up", &up, ReactionUp, nil},
		{"down", &down, ReactionDown, nil},
		{"empty string retracts", &empty, ReactionNone, nil},
		{"none literal retracts", &noneLiteral, ReactionNone, nil},
		{"unknown literal rejected", &sideways, ReactionNone, ErrInvalidReaction},
		{"case sensitive", &upper, ReactionNone, ErrInvalidReaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReaction(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
