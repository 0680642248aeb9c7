package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkTransitions(t *testing.T) {
	tests := []struct {
		name        string
		start       Verdict
		startScore  int
		field       string
		correct     bool
		wantVerdict Verdict
		wantScore   int
	}{
		{"unset to correct awards a point", VerdictUnset, 0, FieldTitle, true, VerdictCorrect, 1},
		{"incorrect to correct awards a point", VerdictIncorrect, 2, FieldTitle, true, VerdictCorrect, 3},
		{"correct to incorrect revokes the point", VerdictCorrect, 1, FieldTitle, false, VerdictIncorrect, 0},
		{"correct re-marked correct is a no-op", VerdictCorrect, 1, FieldTitle, true, VerdictCorrect, 1},
		{"incorrect re-marked incorrect is a no-op", VerdictIncorrect, 3, FieldTitle, false, VerdictIncorrect, 3},
		{"unset marked incorrect stays at zero", VerdictUnset, 0, FieldTitle, false, VerdictIncorrect, 0},
		{"revoking at zero floors the score", VerdictCorrect, 0, FieldTitle, false, VerdictIncorrect, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlayer("p1", "Alice")
			p.TitleCorrect = tt.start
			p.Score = tt.startScore

			p.Mark(tt.field, tt.correct)

			assert.Equal(t, tt.wantVerdict, p.TitleCorrect)
			assert.Equal(t, tt.wantScore, p.Score)
		})
	}
}

func TestMarkIdempotent(t *testing.T) {
	p := newPlayer("p1", "Alice")

	p.Mark(FieldTitle, true)
	once := p.Score

	p.Mark(FieldTitle, true)
	assert.Equal(t, once, p.Score)
}

func TestMarkReversible(t *testing.T) {
	p := newPlayer("p1", "Alice")
	p.Score = 4

	p.Mark(FieldArtist, true)
	assert.Equal(t, 5, p.Score)

	p.Mark(FieldArtist, false)
	assert.Equal(t, 4, p.Score)
}

func TestMarkFieldsIndependent(t *testing.T) {
	p := newPlayer("p1", "Alice")

	p.Mark(FieldTitle, true)
	p.Mark(FieldArtist, true)

	assert.Equal(t, 2, p.Score)
	assert.Equal(t, VerdictCorrect, p.TitleCorrect)
	assert.Equal(t, VerdictCorrect, p.ArtistCorrect)

	p.Mark(FieldTitle, false)
	assert.Equal(t, 1, p.Score)
	assert.Equal(t, VerdictCorrect, p.ArtistCorrect)
}

func TestMarkUnknownFieldIgnored(t *testing.T) {
	p := newPlayer("p1", "Alice")

	p.Mark("album", true)

	assert.Equal(t, 0, p.Score)
	assert.Equal(t, VerdictUnset, p.TitleCorrect)
	assert.Equal(t, VerdictUnset, p.ArtistCorrect)
}

func TestScoreNeverNegative(t *testing.T) {
	p := newPlayer("p1", "Alice")

	for i := 0; i < 5; i++ {
		p.Mark(FieldTitle, false)
		p.Mark(FieldArtist, false)
		p.Mark(FieldTitle, true)
		p.Mark(FieldTitle, false)
	}

	assert.GreaterOrEqual(t, p.Score, 0)
}
