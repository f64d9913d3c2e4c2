// internal/game/stats.go
//
// Session win/loss counters and the high score.

package game

// Stats are the session counters of one player. Wins and losses live only as
// long as the process; HighScore is seeded from durable storage.
type Stats struct {
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	HighScore int `json:"highScore"`
}

// Record counts a finished round and reports whether HighScore was raised.
// Non-terminal statuses are ignored.
func (s *Stats) Record(status Status) (newHighScore bool) {
	switch status {
	case StatusWon:
		s.Wins++
		if s.Wins > s.HighScore {
			s.HighScore = s.Wins
			return true
		}
	case StatusLost:
		s.Losses++
	}
	return false
}
