package game

// Verdict is the host's ruling on a single guessed field. The zero-ish
// "unset" state is distinct from "incorrect" on the wire, but both count
// as "no point awarded" for scoring purposes.
type Verdict string

const (
	VerdictUnset     Verdict = "unset"
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// Player belongs to exactly one room. The id is handed back to the client
// on join so it can be persisted and replayed for reconnects.
type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Score         int     `json:"score"`
	TitleGuess    string  `json:"titleGuess"`
	ArtistGuess   string  `json:"artistGuess"`
	Submitted     bool    `json:"submitted"`
	TitleCorrect  Verdict `json:"titleCorrect"`
	ArtistCorrect Verdict `json:"artistCorrect"`
}

func newPlayer(id, name string) *Player {
	return &Player{
		ID:            id,
		Name:          name,
		TitleCorrect:  VerdictUnset,
		ArtistCorrect: VerdictUnset,
	}
}

// resetRound clears everything scoped to a single song, preserving score.
func (p *Player) resetRound() {
	p.TitleGuess = ""
	p.ArtistGuess = ""
	p.Submitted = false
	p.TitleCorrect = VerdictUnset
	p.ArtistCorrect = VerdictUnset
}

// resetGame additionally zeroes the score, for a fresh game run.
func (p *Player) resetGame() {
	p.Score = 0
	p.resetRound()
}

// resetReconnect is applied when a known player rejoins: the pending
// submission is discarded but score stays, and any verdicts from the
// current review cycle are deliberately left in place (only the round
// resets clear them).
func (p *Player) resetReconnect() {
	p.TitleGuess = ""
	p.ArtistGuess = ""
	p.Submitted = false
}
