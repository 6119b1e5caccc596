package test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/question"
)

func newStandalone(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{ID: uuid.New()}
	}
	return qs
}

func newPassageGroup(n int) (uuid.UUID, []question.Question) {
	passageID := uuid.New()
	qs := make([]question.Question, n)
	for i := range qs {
		id := passageID
		qs[i] = question.Question{ID: uuid.New(), PassageID: &id}
	}
	return passageID, qs
}

func seededAssembler(seed int64) *Assembler {
	return NewAssembler(rand.New(rand.NewSource(seed)))
}

// passageRuns maps each passage id to the index ranges where its
// questions appear in the selection.
func assertGroupsContiguous(t *testing.T, selected []question.Question) {
	t.Helper()

	seen := map[uuid.UUID]bool{}
	var current *uuid.UUID
	for i, q := range selected {
		if q.PassageID == nil {
			current = nil
			continue
		}
		if current == nil || *current != *q.PassageID {
			if seen[*q.PassageID] {
				t.Errorf("grupo de passagem %s foi intercalado na posição %d", q.PassageID, i)
			}
			seen[*q.PassageID] = true
			current = q.PassageID
		}
	}
}

func TestAssembleMix(t *testing.T) {
	// 8 avulsas + um grupo de passagem com 10; pedindo 10, o alvo de
	// passagem é 7 e o restante vem das avulsas.
	standalone := newStandalone(8)
	passageID, attached := newPassageGroup(10)

	selected, err := seededAssembler(42).Assemble(standalone, attached, 10)
	if err != nil {
		t.Fatalf("Assemble falhou inesperadamente: %v", err)
	}

	if len(selected) != 10 {
		t.Fatalf("Esperado 10 questões, recebido %d", len(selected))
	}

	passageCount := 0
	for _, q := range selected {
		if q.PassageID != nil {
			if *q.PassageID != passageID {
				t.Errorf("questão de passagem inesperada: %s", q.PassageID)
			}
			passageCount++
		}
	}
	if passageCount != 7 {
		t.Errorf("Esperado 7 questões de passagem, recebido %d", passageCount)
	}
	assertGroupsContiguous(t, selected)
}

func TestAssembleExactCountWhenPoolSuffices(t *testing.T) {
	standalone := newStandalone(5)
	_, g1 := newPassageGroup(4)
	_, g2 := newPassageGroup(3)
	attached := append(g1, g2...)

	for _, requested := range []int{1, 5, 8, 12} {
		selected, err := seededAssembler(7).Assemble(standalone, attached, requested)
		if err != nil {
			t.Fatalf("Assemble(%d) falhou: %v", requested, err)
		}
		if len(selected) != requested {
			t.Errorf("Assemble(%d) retornou %d questões", requested, len(selected))
		}
		assertGroupsContiguous(t, selected)
	}
}

func TestAssembleFillsFromPassagesWhenStandaloneRunsDry(t *testing.T) {
	standalone := newStandalone(2)
	_, attached := newPassageGroup(10)

	selected, err := seededAssembler(3).Assemble(standalone, attached, 10)
	if err != nil {
		t.Fatalf("Assemble falhou: %v", err)
	}
	if len(selected) != 10 {
		t.Fatalf("Esperado 10 questões, recebido %d", len(selected))
	}
	assertGroupsContiguous(t, selected)
}

func TestAssembleShortfall(t *testing.T) {
	standalone := newStandalone(3)
	passageID, attached := newPassageGroup(4)

	_, err := seededAssembler(1).Assemble(standalone, attached, 20)
	if err == nil {
		t.Fatal("Assemble deveria ter retornado shortfall, mas passou.")
	}

	var shortfall *InsufficientQuestionsError
	if !errors.As(err, &shortfall) {
		t.Fatalf("Erro inesperado: %v", err)
	}
	if shortfall.AvailableQuestions != 7 {
		t.Errorf("AvailableQuestions incorreto. Esperado: 7, Recebido: %d", shortfall.AvailableQuestions)
	}
	if len(shortfall.PassageGroups) != 1 || shortfall.PassageGroups[0].PassageID != passageID || shortfall.PassageGroups[0].Size != 4 {
		t.Errorf("PassageGroups incorreto: %+v", shortfall.PassageGroups)
	}
}

func TestAssembleEmptyPools(t *testing.T) {
	_, err := seededAssembler(1).Assemble(nil, nil, 5)

	var shortfall *InsufficientQuestionsError
	if !errors.As(err, &shortfall) {
		t.Fatalf("Esperado shortfall, recebido: %v", err)
	}
	if shortfall.AvailableQuestions != 0 {
		t.Errorf("AvailableQuestions deveria ser 0, recebido %d", shortfall.AvailableQuestions)
	}
}

func TestAssembleRejectsNonPositiveCount(t *testing.T) {
	for _, requested := range []int{0, -3} {
		_, err := seededAssembler(1).Assemble(newStandalone(5), nil, requested)
		if !errors.Is(err, ErrInvalidQuestionCount) {
			t.Errorf("Assemble(%d) deveria rejeitar a contagem, recebido: %v", requested, err)
		}
	}
}

func TestAssembleDeterministicWithSeed(t *testing.T) {
	standalone := newStandalone(6)
	_, attached := newPassageGroup(5)

	first, err := seededAssembler(99).Assemble(standalone, attached, 8)
	if err != nil {
		t.Fatalf("Assemble falhou: %v", err)
	}
	second, err := seededAssembler(99).Assemble(standalone, attached, 8)
	if err != nil {
		t.Fatalf("Assemble falhou: %v", err)
	}

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("Seleção não determinística com a mesma semente na posição %d", i)
		}
	}
}

func TestAssemblePrefersLargerGroups(t *testing.T) {
	_, small := newPassageGroup(2)
	largeID, large := newPassageGroup(6)
	attached := append(small, large...)

	selected, err := seededAssembler(5).Assemble(newStandalone(10), attached, 8)
	if err != nil {
		t.Fatalf("Assemble falhou: %v", err)
	}

	// passageTarget = 6: o grupo grande cabe inteiro e deve vencer o pequeno.
	largeCount := 0
	for _, q := range selected {
		if q.PassageID != nil && *q.PassageID == largeID {
			largeCount++
		}
	}
	if largeCount != 6 {
		t.Errorf("Esperado o grupo grande inteiro (6), recebido %d", largeCount)
	}
}
