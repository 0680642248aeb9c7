package game

// Phase is the current stage of a room's game loop.
type Phase string

const (
	PhaseLobby   Phase = "lobby"   // waiting for players to join
	PhasePlaying Phase = "playing" // a song is playing, guesses are open
	PhaseReview  Phase = "review"  // host is grading the submitted guesses
	PhaseResults Phase = "results" // final standings after the last song
)
