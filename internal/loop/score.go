package loop

// ScoreDisplay receives the score whenever it changes.
type ScoreDisplay interface {
	SetScore(score int)
}

// ScoreManager accumulates the score for one scene.
type ScoreManager struct {
	score   int
	display ScoreDisplay
}

// NewScoreManager creates a zero score and shows it on display.
func NewScoreManager(display ScoreDisplay) *ScoreManager {
	if display == nil {
		display = NopHUD{}
	}
	m := &ScoreManager{display: display}
	m.display.SetScore(0)
	return m
}

// Add adds points to the score and updates the display.
func (m *ScoreManager) Add(points int) {
	m.score += points
	m.display.SetScore(m.score)
}

// Score returns the current score.
func (m *ScoreManager) Score() int {
	return m.score
}

// Reset sets the score back to zero.
func (m *ScoreManager) Reset() {
	m.score = 0
	m.display.SetScore(0)
}
