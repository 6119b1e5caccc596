package test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/question"
)

func newTest(durationSeconds int) *Test {
	return &Test{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Code:            "ABCD1234",
		Status:          IN_PROGRESS,
		DurationSeconds: durationSeconds,
	}
}

func answered(correct string, given *string) TestQuestion {
	return TestQuestion{
		ID:         uuid.New(),
		Question:   question.Question{ID: uuid.New(), CorrectChoice: correct},
		UserAnswer: given,
	}
}

func strPtr(s string) *string { return &s }

func TestStartSetsClock(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)

	if err := startTest(tst, now); err != nil {
		t.Fatalf("startTest falhou: %v", err)
	}

	if tst.StartedAt == nil || !tst.StartedAt.Equal(now) {
		t.Errorf("StartedAt incorreto: %v", tst.StartedAt)
	}
	if tst.RemainingSeconds == nil || *tst.RemainingSeconds != 900 {
		t.Errorf("RemainingSeconds deveria ser 900, recebido %v", tst.RemainingSeconds)
	}
}

func TestStartIsNoOpWhileRunning(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)

	later := now.Add(30 * time.Second)
	if err := startTest(tst, later); err != nil {
		t.Fatalf("startTest repetido falhou: %v", err)
	}

	if !tst.StartedAt.Equal(now) {
		t.Error("startTest repetido não deveria reiniciar o relógio")
	}
	if *tst.RemainingSeconds != 900 {
		t.Error("startTest repetido não deveria alterar o tempo restante")
	}
}

func TestPauseAndResume(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)

	pauseAt := now.Add(2 * time.Minute)
	if err := pauseTest(tst, 780, pauseAt); err != nil {
		t.Fatalf("pauseTest falhou: %v", err)
	}
	if tst.PausedAt == nil || *tst.RemainingSeconds != 780 {
		t.Fatalf("checkpoint de pausa incorreto: paused=%v remaining=%v", tst.PausedAt, tst.RemainingSeconds)
	}

	resumeAt := pauseAt.Add(time.Hour)
	if err := startTest(tst, resumeAt); err != nil {
		t.Fatalf("resume falhou: %v", err)
	}
	if tst.PausedAt != nil {
		t.Error("PausedAt deveria ser limpo no resume")
	}
	if !tst.StartedAt.Equal(resumeAt) {
		t.Error("resume deveria reancorar o relógio de decorrido")
	}
	if *tst.RemainingSeconds != 780 {
		t.Error("resume não deveria alterar o checkpoint de tempo restante")
	}
}

func TestPauseRejectsOutOfRange(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)

	if err := pauseTest(tst, -1, now); !errors.Is(err, ErrInvalidRemaining) {
		t.Errorf("pauseTest(-1) deveria falhar com ErrInvalidRemaining, recebido: %v", err)
	}
	if err := pauseTest(tst, 901, now); !errors.Is(err, ErrInvalidRemaining) {
		t.Errorf("pauseTest(901) deveria falhar com ErrInvalidRemaining, recebido: %v", err)
	}
}

func TestPauseNeverIncreasesRemaining(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)
	_ = pauseTest(tst, 300, now.Add(10*time.Minute))

	if err := pauseTest(tst, 600, now.Add(11*time.Minute)); err != nil {
		t.Fatalf("pauseTest falhou: %v", err)
	}
	if *tst.RemainingSeconds != 300 {
		t.Errorf("RemainingSeconds não pode crescer; esperado 300, recebido %d", *tst.RemainingSeconds)
	}
}

func TestPauseBeforeStartIsRejected(t *testing.T) {
	tst := newTest(900)
	if err := pauseTest(tst, 500, time.Now().UTC()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("pausar antes do início deveria falhar com ErrInvalidState, recebido: %v", err)
	}
}

func TestCompleteScoresAndFreezes(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)

	tst.Questions = []TestQuestion{
		answered("A", strPtr("A")),
		answered("B", strPtr("C")),
		answered("C", strPtr("C")),
		answered("D", nil),
	}

	done := completeTest(tst, now.Add(5*time.Minute))
	if done {
		t.Fatal("completeTest não deveria reportar teste já finalizado")
	}

	if tst.Status != COMPLETED || tst.CompletedAt == nil {
		t.Fatal("teste deveria estar COMPLETED com CompletedAt definido")
	}
	if tst.Score == nil || *tst.Score != 50 {
		t.Errorf("Score incorreto. Esperado: 50, Recebido: %v", tst.Score)
	}
	if *tst.RemainingSeconds != 600 {
		t.Errorf("RemainingSeconds incorreto. Esperado: 600, Recebido: %d", *tst.RemainingSeconds)
	}
}

func TestCompleteClampsAtZero(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(60)
	_ = startTest(tst, now)

	completeTest(tst, now.Add(time.Hour))
	if *tst.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds deveria congelar em 0, recebido %d", *tst.RemainingSeconds)
	}
}

func TestCompleteWhilePausedKeepsCheckpoint(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)
	_ = pauseTest(tst, 400, now.Add(time.Minute))

	completeTest(tst, now.Add(3*time.Hour))
	if *tst.RemainingSeconds != 400 {
		t.Errorf("teste pausado deveria manter o checkpoint; recebido %d", *tst.RemainingSeconds)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)
	tst.Questions = []TestQuestion{answered("A", strPtr("A"))}

	completeTest(tst, now.Add(time.Minute))
	firstScore := *tst.Score
	firstRemaining := *tst.RemainingSeconds
	firstCompletedAt := *tst.CompletedAt

	// Segunda chamada (corrida de auto-complete) não recalcula nada.
	tst.Questions[0].UserAnswer = strPtr("B")
	if done := completeTest(tst, now.Add(10*time.Minute)); !done {
		t.Fatal("segunda chamada deveria reportar teste já finalizado")
	}

	if *tst.Score != firstScore || *tst.RemainingSeconds != firstRemaining || !tst.CompletedAt.Equal(firstCompletedAt) {
		t.Error("resultado armazenado não pode mudar em chamadas repetidas de complete")
	}
}

func TestStartAfterCompleteIsRejected(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(900)
	_ = startTest(tst, now)
	completeTest(tst, now.Add(time.Minute))

	if err := startTest(tst, now.Add(2*time.Minute)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("start após complete deveria falhar com ErrInvalidState, recebido: %v", err)
	}
	if err := pauseTest(tst, 100, now.Add(2*time.Minute)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("pause após complete deveria falhar com ErrInvalidState, recebido: %v", err)
	}
}

func TestScoreRounding(t *testing.T) {
	cases := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{0, 0, 0},
	}

	for _, c := range cases {
		questions := make([]TestQuestion, c.total)
		for i := range questions {
			if i < c.correct {
				questions[i] = answered("A", strPtr("A"))
			} else {
				questions[i] = answered("A", strPtr("B"))
			}
		}

		if got := computeScore(questions); got != c.want {
			t.Errorf("computeScore(%d/%d) = %d, esperado %d", c.correct, c.total, got, c.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Now().UTC()
	tst := newTest(60)
	_ = startTest(tst, now)

	if isOverdue(tst, now.Add(30*time.Second)) {
		t.Error("teste dentro do prazo não deveria estar vencido")
	}
	if !isOverdue(tst, now.Add(2*time.Minute)) {
		t.Error("teste com relógio esgotado deveria estar vencido")
	}

	// Pausado nunca vence pelo relógio de parede.
	_ = pauseTest(tst, 10, now.Add(30*time.Second))
	if isOverdue(tst, now.Add(24*time.Hour)) {
		t.Error("teste pausado não deveria vencer")
	}
}
