package game

// Field names the host can grade.
const (
	FieldTitle  = "title"
	FieldArtist = "artist"
)

// Mark applies a host ruling to one guessed field. Points move only on a
// state change: awarding an already-correct field or revoking an already
// not-correct one is a no-op, so repeated marks are idempotent and a
// correct→incorrect flip exactly undoes the earlier award (floored at 0).
// Unknown fields are ignored.
func (p *Player) Mark(field string, correct bool) {
	var v *Verdict
	switch field {
	case FieldTitle:
		v = &p.TitleCorrect
	case FieldArtist:
		v = &p.ArtistCorrect
	default:
		return
	}

	next := VerdictIncorrect
	if correct {
		next = VerdictCorrect
	}

	if next == VerdictCorrect && *v != VerdictCorrect {
		p.Score++
	}
	if next == VerdictIncorrect && *v == VerdictCorrect {
		p.Score = max(0, p.Score-1)
	}

	*v = next
}
