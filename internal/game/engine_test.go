package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func first(int) int { return 0 }

func guessAll(t *testing.T, r *Round, letters string) {
	t.Helper()
	for _, c := range letters {
		_, err := r.Guess(c)
		require.NoError(t, err, "guess %q", c)
	}
}

func TestGuessRevealsEveryPosition(t *testing.T) {
	r := NewRound("banana")

	out, err := r.Guess('a')
	require.NoError(t, err)
	assert.True(t, out.Hit)
	assert.Equal(t, []int{1, 3, 5}, out.Positions)
	assert.Equal(t, StatusInProgress, out.Status)
	assert.Equal(t, []string{"", "a", "", "a", "", "a"}, r.Masked())
	assert.Equal(t, 0, r.Incorrect())
}

func TestGuessMissCountsOnce(t *testing.T) {
	r := NewRound("banana")

	out, err := r.Guess('z')
	require.NoError(t, err)
	assert.False(t, out.Hit)
	assert.Empty(t, out.Positions)
	assert.Equal(t, 1, r.Incorrect())
	assert.Equal(t, KeyIncorrect, r.Key('z'))
}

func TestGuessFoldsUpperCase(t *testing.T) {
	r := NewRound("Cat")
	out, err := r.Guess('C')
	require.NoError(t, err)
	assert.Equal(t, "c", out.Letter)
	assert.True(t, r.Correct('c'))
}

func TestGuessRejectsNonLetters(t *testing.T) {
	r := NewRound("cat")
	for _, c := range []rune{'1', ' ', 'é', '-'} {
		_, err := r.Guess(c)
		assert.ErrorIs(t, err, ErrInvalidLetter)
	}
	assert.Equal(t, 0, r.Incorrect())
}

func TestDuplicateGuessIsNoOp(t *testing.T) {
	r := NewRound("apple")

	_, err := r.Guess('p')
	require.NoError(t, err)
	_, err = r.Guess('x')
	require.NoError(t, err)

	before := r.Masked()
	_, err = r.Guess('p')
	assert.ErrorIs(t, err, ErrAlreadyGuessed)
	_, err = r.Guess('x')
	assert.ErrorIs(t, err, ErrAlreadyGuessed)

	assert.Equal(t, 1, r.Incorrect())
	assert.Equal(t, before, r.Masked())
}

func TestWinInAnyOrderLeavesMissesUnchanged(t *testing.T) {
	for _, order := range []string{"helo", "oleh", "lohe", "ehlo"} {
		r := NewRound("hello")
		guessAll(t, r, "zq")
		guessAll(t, r, order)
		assert.Equal(t, StatusWon, r.Status(), order)
		assert.Equal(t, 2, r.Incorrect(), order)
	}
}

func TestSixMissesLose(t *testing.T) {
	r := NewRound("sky")
	var out Outcome
	var err error
	for _, c := range "abcdef" {
		out, err = r.Guess(c)
		require.NoError(t, err)
	}
	assert.Equal(t, StatusLost, out.Status)
	assert.Equal(t, StatusLost, r.Status())
	assert.Equal(t, "sky", r.Secret())
	assert.Equal(t, MaxIncorrect, r.Incorrect())
}

func TestTerminalRoundRejectsGuesses(t *testing.T) {
	r := NewRound("ox")
	guessAll(t, r, "ox")
	require.Equal(t, StatusWon, r.Status())

	_, err := r.Guess('a')
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.Equal(t, 0, r.Incorrect())
	assert.False(t, r.HintAvailable())
}

func TestHintAvailability(t *testing.T) {
	cases := []struct {
		name    string
		secret  string
		guesses string
		want    bool
	}{
		{"fresh round", "garden", "", true},
		{"one miss left", "garden", "qwxyz", false},
		{"two misses left", "garden", "qwxy", true},
		{"one letter left", "garden", "garde", false},
		{"two letters left", "garden", "gard", true},
		{"single distinct letter", "aaaa", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRound(tc.secret)
			guessAll(t, r, tc.guesses)
			assert.Equal(t, tc.want, r.HintAvailable())
		})
	}
}

func TestHintChargesOneMissAndRevealsOneLetter(t *testing.T) {
	r := NewRound("garden")
	guessAll(t, r, "gz")
	unguessed, incorrect := r.Unguessed(), r.Incorrect()

	out, err := r.Hint(first)
	require.NoError(t, err)
	assert.True(t, out.Hint)
	assert.True(t, out.Hit)
	assert.Equal(t, "a", out.Letter) // sorted unguessed: a d e n r
	assert.Equal(t, []int{1}, out.Positions)
	assert.Equal(t, incorrect+1, r.Incorrect())
	assert.Equal(t, unguessed-1, r.Unguessed())
	assert.Equal(t, KeyCorrect, r.Key('a'))

	_, err = r.Guess('a')
	assert.ErrorIs(t, err, ErrAlreadyGuessed)
}

func TestHintUnavailableIsNoOp(t *testing.T) {
	r := NewRound("garden")
	guessAll(t, r, "garde")

	_, err := r.Hint(first)
	assert.ErrorIs(t, err, ErrNoHint)
	assert.Equal(t, 0, r.Incorrect())
	assert.Equal(t, 1, r.Unguessed())
}

func TestKeyStates(t *testing.T) {
	r := NewRound("cab")
	guessAll(t, r, "cz")
	assert.Equal(t, KeyCorrect, r.Key('c'))
	assert.Equal(t, KeyIncorrect, r.Key('z'))
	assert.Equal(t, KeyUntried, r.Key('a'))
}

func TestStatsRecord(t *testing.T) {
	s := Stats{HighScore: 2}

	assert.False(t, s.Record(StatusWon))
	assert.False(t, s.Record(StatusLost))
	assert.False(t, s.Record(StatusWon))
	assert.True(t, s.Record(StatusWon))
	assert.False(t, s.Record(StatusInProgress))

	assert.Equal(t, Stats{Wins: 3, Losses: 1, HighScore: 3}, s)
}
