package round

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/words"
)

var epoch = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// recorder collects every event emitted by an engine.
type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) reset() {
	r.events = nil
}

func (r *recorder) comboLost() []ComboLost {
	var out []ComboLost
	for _, ev := range r.events {
		if cl, ok := ev.(ComboLost); ok {
			out = append(out, cl)
		}
	}
	return out
}

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func isRoundEnded(ev Event) bool    { _, ok := ev.(RoundEnded); return ok }
func isWordCompleted(ev Event) bool { _, ok := ev.(WordCompleted); return ok }
func isTimerLow(ev Event) bool      { _, ok := ev.(TimerLow); return ok }

// memoryHighScores is an in-memory HighScoreStore.
type memoryHighScores struct {
	scores map[int]int
	saves  int
}

func (m *memoryHighScores) Load(tier int) int { return m.scores[tier] }

func (m *memoryHighScores) Save(tier, score int) {
	m.scores[tier] = score
	m.saves++
}

// catPack only ever serves "cat" below the hard tier.
func catPack() words.Pack {
	return words.Pack{
		ID:    "cat",
		Title: "Cat",
		Lists: map[words.Tier][]string{
			words.TierEasy:   {"cat"},
			words.TierMedium: {"planet"},
			words.TierHard:   {"quantum"},
			words.TierBonus:  {"dragon"},
		},
	}
}

// easyOnlyRules keeps every pick in the easy tier.
func easyOnlyRules() Rules {
	r := DefaultRules()
	r.Progression = Progression{MediumAt: 1000, HardAt: 1000, BonusChance: 0}
	return r
}

func newTestEngine(t *testing.T, rules Rules, opts ...Option) (*Engine, *core.ManualClock, *recorder) {
	t.Helper()

	src, err := words.NewSource(catPack(), nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSource() failed: %v", err)
	}

	clock := core.NewManualClock(epoch)
	opts = append([]Option{WithRules(rules), WithClock(clock), WithRand(rand.New(rand.NewSource(1)))}, opts...)
	e, err := NewEngine(src, opts...)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	rec := &recorder{}
	e.Subscribe(rec)
	return e, clock, rec
}

func typeWord(e *Engine, w string) {
	for _, c := range w {
		e.HandleChar(c)
	}
}

func TestScenarioInstantCat(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())

	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "cat")

	s := e.Snapshot()
	if s.Score != 9 {
		t.Errorf("Score = %d, expected floor(3*1 * 3 * 1) = 9", s.Score)
	}
	if s.Combo != 1 || s.WordsCompleted != 1 {
		t.Errorf("Combo = %d, WordsCompleted = %d; expected 1, 1", s.Combo, s.WordsCompleted)
	}
	if s.TypedPrefix != "" {
		t.Errorf("TypedPrefix = %q, expected empty after completion", s.TypedPrefix)
	}
	if rec.count(isWordCompleted) != 1 {
		t.Errorf("expected 1 WordCompleted event, got %d", rec.count(isWordCompleted))
	}
}

func TestComboMultiplierScoring(t *testing.T) {
	e, _, _ := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for combo := 1; combo <= 10; combo++ {
		before := e.Snapshot().Score
		typeWord(e, "cat")
		got := e.Snapshot().Score - before

		want := int(math.Floor(3 * 3 * math.Min(3, 1+float64(combo-1)*0.1)))
		if got != want {
			t.Errorf("combo %d: scored %d, expected %d", combo, got, want)
		}
		if e.Snapshot().Combo != combo {
			t.Errorf("Combo = %d, expected %d", e.Snapshot().Combo, combo)
		}
	}
}

func TestSpeedBonusDecaysWithElapsedTime(t *testing.T) {
	e, clock, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	clock.Advance(2 * time.Second)
	typeWord(e, "cat")

	var wc WordCompleted
	for _, ev := range rec.events {
		if w, ok := ev.(WordCompleted); ok {
			wc = w
		}
	}
	if wc.SpeedBonus != 2 {
		t.Errorf("SpeedBonus = %v, expected 2 after 2s", wc.SpeedBonus)
	}
	if wc.Points != 6 {
		t.Errorf("Points = %d, expected floor(3 * 2 * 1) = 6", wc.Points)
	}
}

func TestWrongLetterLosesCombo(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for i := 0; i < 4; i++ {
		typeWord(e, "cat")
	}
	e.HandleChar('c')
	rec.reset()

	e.HandleChar('x')

	s := e.Snapshot()
	if s.Combo != 0 {
		t.Errorf("Combo = %d, expected 0 after wrong letter", s.Combo)
	}
	if s.MaxCombo != 4 {
		t.Errorf("MaxCombo = %d, expected 4", s.MaxCombo)
	}
	if s.TypedPrefix != "c" {
		t.Errorf("TypedPrefix = %q, wrong letter should not be appended", s.TypedPrefix)
	}

	if len(rec.events) != 2 {
		t.Fatalf("expected ComboLost then WrongLetter, got %#v", rec.events)
	}
	lost, ok := rec.events[0].(ComboLost)
	if !ok || lost.Previous != 4 || lost.Reason != ComboLossWrongLetter {
		t.Errorf("first event = %#v, expected ComboLost{4, wrong letter}", rec.events[0])
	}
	wrong, ok := rec.events[1].(WrongLetter)
	if !ok || wrong.Letter != 'x' || wrong.Expected != 'a' || wrong.Prefix != "c" {
		t.Errorf("second event = %#v, expected WrongLetter{x, a, c}", rec.events[1])
	}
}

func TestWrongLetterAtComboOneIsQuiet(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	typeWord(e, "cat")
	rec.reset()
	e.HandleChar('z')

	if n := len(rec.comboLost()); n != 0 {
		t.Errorf("combo of 1 should not emit ComboLost, got %d events", n)
	}
	if e.Snapshot().Combo != 0 {
		t.Errorf("Combo = %d, expected reset to 0", e.Snapshot().Combo)
	}
	if e.Snapshot().WordsCompleted != 1 {
		t.Error("WrongLetter must not change WordsCompleted")
	}
}

func TestRoundEndsAfterDuration(t *testing.T) {
	e, clock, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(15 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	e.HandleChar('c')

	const step = 100 * time.Millisecond
	for i := 1; i <= 150; i++ {
		clock.Advance(step)
		e.Tick(step)

		ended := rec.count(isRoundEnded)
		if i < 150 && ended != 0 {
			t.Fatalf("round ended early at tick %d", i)
		}
	}

	if rec.count(isRoundEnded) != 1 {
		t.Fatalf("expected exactly one RoundEnded, got %d", rec.count(isRoundEnded))
	}

	s := e.Snapshot()
	if s.IsActive || s.Phase != PhaseEnded {
		t.Errorf("round should be ended, got phase %v active %v", s.Phase, s.IsActive)
	}
	if s.TimeRemaining != 0 {
		t.Errorf("TimeRemaining = %v, expected 0", s.TimeRemaining)
	}

	// Further ticks and stops are no-ops
	e.Tick(time.Second)
	e.Stop()
	if rec.count(isRoundEnded) != 1 {
		t.Errorf("RoundEnded fired again, total %d", rec.count(isRoundEnded))
	}
}

func TestTimerWaitsForFirstLetter(t *testing.T) {
	e, clock, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(15 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		clock.Advance(time.Second)
		e.Tick(time.Second)
	}

	s := e.Snapshot()
	if s.TimeRemaining != 15*time.Second {
		t.Errorf("TimeRemaining = %v, timer should not run before typing", s.TimeRemaining)
	}
	if s.Phase != PhasePending {
		t.Errorf("Phase = %v, expected pending", s.Phase)
	}

	e.HandleChar('q') // wrong, but still starts the timer
	if !e.Snapshot().TimerStarted || e.Snapshot().Phase != PhaseRunning {
		t.Error("first letter should start the timer")
	}
	started := rec.count(func(ev Event) bool { _, ok := ev.(TimerStarted); return ok })
	if started != 1 {
		t.Errorf("expected one TimerStarted, got %d", started)
	}

	e.HandleChar('c')
	if rec.count(func(ev Event) bool { _, ok := ev.(TimerStarted); return ok }) != 1 {
		t.Error("TimerStarted must only fire once")
	}
}

func TestIdleComboDecay(t *testing.T) {
	e, clock, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		typeWord(e, "cat")
	}
	rec.reset()

	// Exactly at the timeout nothing happens
	clock.Advance(5 * time.Second)
	e.Tick(5 * time.Second)
	if e.Snapshot().Combo != 3 {
		t.Fatalf("Combo = %d, decay should require more than 5s", e.Snapshot().Combo)
	}

	clock.Advance(100 * time.Millisecond)
	e.Tick(100 * time.Millisecond)
	clock.Advance(100 * time.Millisecond)
	e.Tick(100 * time.Millisecond)

	lost := rec.comboLost()
	if len(lost) != 1 {
		t.Fatalf("expected exactly one ComboLost, got %d", len(lost))
	}
	if lost[0].Previous != 3 || lost[0].Reason != ComboLossIdle {
		t.Errorf("ComboLost = %+v, expected {3 idle}", lost[0])
	}
	if e.Snapshot().Combo != 0 || e.Snapshot().MaxCombo != 3 {
		t.Errorf("Combo = %d, MaxCombo = %d", e.Snapshot().Combo, e.Snapshot().MaxCombo)
	}
}

func TestTimerLowLatchedPerRound(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(10 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	e.HandleChar('c')

	for i := 0; i < 95; i++ {
		e.Tick(100 * time.Millisecond)
	}

	var lows []TimerLow
	for _, ev := range rec.events {
		if tl, ok := ev.(TimerLow); ok {
			lows = append(lows, tl)
		}
	}
	if len(lows) != 2 {
		t.Fatalf("expected TimerLow at 5s and 2s, got %+v", lows)
	}
	if lows[0].Threshold != 5*time.Second || lows[1].Threshold != 2*time.Second {
		t.Errorf("thresholds fired in wrong order: %+v", lows)
	}

	// A new round re-arms the latch
	e.Stop()
	rec.reset()
	if err := e.Start(10 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	e.HandleChar('c')
	e.Tick(6 * time.Second)
	if rec.count(isTimerLow) != 1 {
		t.Errorf("expected 5s threshold to fire again in the new round, got %d", rec.count(isTimerLow))
	}
}

func TestTimerLowSkippedThresholdsFireTogether(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(10 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	e.HandleChar('c')

	e.Tick(9 * time.Second)

	if rec.count(isTimerLow) != 2 {
		t.Errorf("a single large tick should cross both thresholds, got %d", rec.count(isTimerLow))
	}
}

func TestStartAndStopIdempotent(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())

	e.Stop() // never started
	if len(rec.events) != 0 {
		t.Fatalf("Stop() before Start() should emit nothing, got %#v", rec.events)
	}

	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "ca")
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("second Start() failed: %v", err)
	}

	s := e.Snapshot()
	if s.Duration != 30*time.Second || s.TypedPrefix != "ca" {
		t.Errorf("Start() while active must not reset the round, got %v %q", s.Duration, s.TypedPrefix)
	}

	e.Stop()
	e.Stop()
	if rec.count(isRoundEnded) != 1 {
		t.Errorf("expected exactly one RoundEnded, got %d", rec.count(isRoundEnded))
	}
}

func TestStartRejectsInvalidDuration(t *testing.T) {
	e, _, _ := newTestEngine(t, easyOnlyRules())

	for _, d := range []time.Duration{0, -time.Second} {
		if err := e.Start(d); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("Start(%v) error = %v, expected ErrInvalidDuration", d, err)
		}
	}
	if e.Snapshot().Phase != PhaseIdle {
		t.Errorf("Phase = %v, expected idle", e.Snapshot().Phase)
	}
}

func TestStartResetsRound(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "cat")
	typeWord(e, "ca")
	e.Stop()
	rec.reset()

	if err := e.Start(15 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	s := e.Snapshot()
	if s.Score != 0 || s.Combo != 0 || s.MaxCombo != 0 || s.WordsCompleted != 0 || s.WPM != 0 {
		t.Errorf("Start() should clear round counters: %+v", s)
	}
	if s.TypedPrefix != "" || s.TimerStarted || s.TimeRemaining != 15*time.Second {
		t.Errorf("Start() should reset input and timer: %+v", s)
	}
	if s.CurrentWord.Tier != words.TierEasy {
		t.Errorf("first word tier = %v, expected easy", s.CurrentWord.Tier)
	}

	started, ok := rec.events[0].(RoundStarted)
	if !ok || started.Word.Text != s.CurrentWord.Text || started.Duration != 15*time.Second {
		t.Errorf("first event = %#v, expected RoundStarted", rec.events[0])
	}
}

func TestInvalidInputIgnored(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())

	e.HandleChar('c') // not started
	e.HandleBackspace()
	e.HandleClearTyped()
	if len(rec.events) != 0 {
		t.Fatalf("input before Start() should be ignored, got %#v", rec.events)
	}

	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	rec.reset()

	for _, c := range []rune{'C', '1', ' ', 'é', '\n'} {
		e.HandleChar(c)
	}
	if len(rec.events) != 0 || e.Snapshot().TimerStarted {
		t.Errorf("non-letters should be ignored and not start the timer, got %#v", rec.events)
	}
}

func TestBackspaceAndClear(t *testing.T) {
	e, _, rec := newTestEngine(t, easyOnlyRules())
	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "ca")

	e.HandleBackspace()
	if got := e.Snapshot().TypedPrefix; got != "c" {
		t.Errorf("TypedPrefix = %q after backspace, expected %q", got, "c")
	}

	e.HandleClearTyped()
	if got := e.Snapshot().TypedPrefix; got != "" {
		t.Errorf("TypedPrefix = %q after clear, expected empty", got)
	}

	rec.reset()
	e.HandleBackspace()
	e.HandleClearTyped()
	if len(rec.events) != 0 {
		t.Errorf("backspace and clear on empty prefix should be no-ops, got %#v", rec.events)
	}
}

func TestClearKeepsCombo(t *testing.T) {
	e, _, _ := newTestEngine(t, easyOnlyRules())
	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "cat")
	typeWord(e, "ca")

	e.HandleClearTyped()

	if s := e.Snapshot(); s.Combo != 1 || s.Score != 9 {
		t.Errorf("clear should not affect combo or score: combo %d score %d", s.Combo, s.Score)
	}
}

func TestHighScoreLoadAndSave(t *testing.T) {
	store := &memoryHighScores{scores: map[int]int{60: 5, 30: 100}}
	e, _, rec := newTestEngine(t, easyOnlyRules(), WithHighScores(store))

	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if e.Snapshot().HighScore != 5 {
		t.Errorf("HighScore = %d, expected loaded value 5", e.Snapshot().HighScore)
	}
	typeWord(e, "cat")
	e.Stop()

	if store.scores[60] != 9 || store.saves != 1 {
		t.Errorf("expected new high score 9 saved once, got %d (%d saves)", store.scores[60], store.saves)
	}
	ended := rec.events[len(rec.events)-1].(RoundEnded)
	if !ended.NewHighScore || ended.HighScore != 9 {
		t.Errorf("RoundEnded = %+v, expected new high score 9", ended)
	}

	// Lower score on another tier does not save
	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "cat")
	e.Stop()

	if store.saves != 1 || store.scores[30] != 100 {
		t.Errorf("score below the record must not be saved, saves=%d score=%d", store.saves, store.scores[30])
	}
	ended = rec.events[len(rec.events)-1].(RoundEnded)
	if ended.NewHighScore {
		t.Error("NewHighScore should be false")
	}
}

func TestSessionBestAcrossRounds(t *testing.T) {
	e, _, _ := newTestEngine(t, easyOnlyRules())

	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "cat")
	typeWord(e, "cat")
	e.Stop()
	best := e.Snapshot().Score

	if err := e.Start(30 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if e.Snapshot().SessionBest != best {
		t.Errorf("SessionBest = %d, expected %d to survive Start()", e.Snapshot().SessionBest, best)
	}
	e.Stop()
	if e.Snapshot().SessionBest != best {
		t.Errorf("a lower score must not replace SessionBest")
	}
}

func TestWPMFromTimerStart(t *testing.T) {
	e, clock, _ := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// Waiting before the first letter does not count
	clock.Advance(10 * time.Second)
	e.HandleChar('c')
	clock.Advance(15 * time.Second)
	typeWord(e, "at")

	if got := e.Snapshot().WPM; got != 4 {
		t.Errorf("WPM = %d, expected floor(1 / 0.25) = 4", got)
	}
}

func TestWPMZeroElapsed(t *testing.T) {
	e, _, _ := newTestEngine(t, easyOnlyRules())
	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	typeWord(e, "cat")

	if got := e.Snapshot().WPM; got != 0 {
		t.Errorf("WPM = %d, expected 0 when no time has elapsed", got)
	}
}

func TestBonusNeverFirstWord(t *testing.T) {
	rules := easyOnlyRules()
	rules.Progression.BonusChance = 1
	e, _, _ := newTestEngine(t, rules)

	if err := e.Start(60 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if tier := e.Snapshot().CurrentWord.Tier; tier != words.TierEasy {
		t.Fatalf("first word tier = %v, expected easy", tier)
	}

	typeWord(e, "cat")
	if w := e.Snapshot().CurrentWord; w.Tier != words.TierBonus || w.Text != "dragon" {
		t.Errorf("next word = %+v, expected a bonus word", w)
	}

	before := e.Snapshot().Score
	typeWord(e, "dragon")
	// floor(6*3 * 3 * 1.1)
	if got := e.Snapshot().Score - before; got != 59 {
		t.Errorf("bonus word scored %d, expected 59", got)
	}
}

func TestNewEngineValidation(t *testing.T) {
	src, err := words.NewSource(catPack(), nil, nil)
	if err != nil {
		t.Fatalf("NewSource() failed: %v", err)
	}

	if _, err := NewEngine(nil); err == nil {
		t.Error("NewEngine(nil) should fail")
	}

	bad := DefaultRules()
	bad.Progression.HardAt = 1
	if _, err := NewEngine(src, WithRules(bad)); !errors.Is(err, ErrInvalidRules) {
		t.Errorf("NewEngine() error = %v, expected ErrInvalidRules", err)
	}
}

// TestInvariantsUnderRandomInput drives the engine with random keystrokes,
// backspaces and clock jumps and checks the round invariants after every step.
func TestInvariantsUnderRandomInput(t *testing.T) {
	rules := DefaultRules()
	rules.Progression = Progression{MediumAt: 2, HardAt: 4, BonusChance: 0.3}
	e, clock, rec := newTestEngine(t, rules)
	rng := rand.New(rand.NewSource(2024))

	if err := e.Start(120 * time.Second); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	lastScore := 0
	for step := 0; step < 5000 && e.Snapshot().IsActive; step++ {
		switch r := rng.Intn(10); {
		case r < 6:
			// Mostly type the right letter, sometimes a random one
			s := e.Snapshot()
			if rng.Intn(4) > 0 {
				e.HandleChar(rune(s.Remaining()[0]))
			} else {
				e.HandleChar(rune('a' + rng.Intn(26)))
			}
		case r < 7:
			e.HandleBackspace()
		case r < 8:
			dt := time.Duration(rng.Intn(700)) * time.Millisecond
			clock.Advance(dt)
			e.Tick(dt)
		default:
			e.Tick(0)
		}

		s := e.Snapshot()
		if s.Combo < 0 || s.MaxCombo < s.Combo {
			t.Fatalf("step %d: combo invariant broken: combo %d max %d", step, s.Combo, s.MaxCombo)
		}
		if s.Score < lastScore {
			t.Fatalf("step %d: score decreased from %d to %d", step, lastScore, s.Score)
		}
		lastScore = s.Score
		if s.IsActive && !strings.HasPrefix(s.CurrentWord.Text, s.TypedPrefix) {
			t.Fatalf("step %d: %q is not a prefix of %q", step, s.TypedPrefix, s.CurrentWord.Text)
		}
		if s.IsActive && s.TypedPrefix == s.CurrentWord.Text {
			t.Fatalf("step %d: prefix equals the whole word", step)
		}
		if completed := rec.count(isWordCompleted); completed != s.WordsCompleted {
			t.Fatalf("step %d: %d WordCompleted events but WordsCompleted = %d", step, completed, s.WordsCompleted)
		}
	}
}
