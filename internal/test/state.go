package test

import (
	"math"
	"time"
)

// Lifecycle transitions, separated from persistence so the state
// machine can be exercised without a database. Every caller persists
// the mutated row inside one transaction.

// startTest activates a fresh test or resumes a paused one. Calling it
// on a running test is a no-op.
func startTest(t *Test, now time.Time) error {
	if t.Status == COMPLETED {
		return ErrInvalidState
	}

	if t.StartedAt == nil {
		remaining := t.DurationSeconds
		t.StartedAt = &now
		t.RemainingSeconds = &remaining
		return nil
	}

	if t.PausedAt != nil {
		// Resume keeps the remaining-seconds checkpoint and restarts the
		// elapsed clock from now.
		t.PausedAt = nil
		t.StartedAt = &now
	}
	return nil
}

// pauseTest stores the caller-supplied checkpoint. The value can only
// shrink the remaining time, never grow it.
func pauseTest(t *Test, remainingSeconds int, now time.Time) error {
	if t.Status == COMPLETED || t.StartedAt == nil {
		return ErrInvalidState
	}
	if remainingSeconds < 0 || remainingSeconds > t.DurationSeconds {
		return ErrInvalidRemaining
	}

	if t.RemainingSeconds != nil && remainingSeconds > *t.RemainingSeconds {
		remainingSeconds = *t.RemainingSeconds
	}

	t.PausedAt = &now
	t.RemainingSeconds = &remainingSeconds
	return nil
}

// completeTest freezes the timer and scores the test. Returns true when
// the test was already completed and nothing changed.
func completeTest(t *Test, now time.Time) bool {
	if t.Status == COMPLETED {
		return true
	}

	remaining := effectiveRemaining(t, now)
	score := computeScore(t.Questions)

	t.Status = COMPLETED
	t.CompletedAt = &now
	t.PausedAt = nil
	t.RemainingSeconds = &remaining
	t.Score = &score
	return false
}

// effectiveRemaining derives the live remaining time. While running it
// subtracts the wall clock elapsed since the last start/resume from the
// stored checkpoint; paused or unstarted tests keep the checkpoint.
// Never negative.
func effectiveRemaining(t *Test, now time.Time) int {
	remaining := t.DurationSeconds
	if t.RemainingSeconds != nil {
		remaining = *t.RemainingSeconds
	}

	if t.Status == IN_PROGRESS && t.StartedAt != nil && t.PausedAt == nil {
		elapsed := int(now.Sub(*t.StartedAt).Seconds())
		remaining -= elapsed
	}

	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// isOverdue reports whether a running test has exhausted its clock. The
// server checks it on every read, so a client that never calls complete
// cannot stretch a test forever.
func isOverdue(t *Test, now time.Time) bool {
	return t.Status == IN_PROGRESS && t.StartedAt != nil && t.PausedAt == nil &&
		effectiveRemaining(t, now) == 0
}

func computeScore(questions []TestQuestion) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for _, tq := range questions {
		if tq.UserAnswer != nil && *tq.UserAnswer == tq.Question.CorrectChoice {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}
