package test

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/question"
)

// Assembler picks a concrete ordered question set for a new test. The
// mix targets roughly 75% passage-attached questions; passage groups
// stay contiguous in the final order. The random source is injected so
// selection is repeatable under test.
type Assembler struct {
	rnd *rand.Rand
}

func NewAssembler(rnd *rand.Rand) *Assembler {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Assembler{rnd: rnd}
}

type passageGroup struct {
	passageID uuid.UUID
	items     []question.Question
}

func (a *Assembler) Assemble(standalone, passageAttached []question.Question, requested int) ([]question.Question, error) {
	if requested <= 0 {
		return nil, ErrInvalidQuestionCount
	}

	groups := groupByPassage(passageAttached)

	// Larger passages first: splitting a passage across two tests wastes
	// its remaining questions.
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].items) > len(groups[j].items)
	})

	available := len(standalone) + len(passageAttached)
	if available < requested {
		return nil, &InsufficientQuestionsError{
			AvailableQuestions: available,
			PassageGroups:      groupInfos(groups),
		}
	}

	passageTarget := requested * 3 / 4

	// Whole groups while they fit within the passage target.
	taken := make([]int, len(groups))
	passageCount := 0
	for i, g := range groups {
		if passageCount+len(g.items) <= passageTarget {
			taken[i] = len(g.items)
			passageCount += len(g.items)
		}
	}

	// Top the target up by truncating one more group.
	if passageCount < passageTarget {
		for i, g := range groups {
			if taken[i] == 0 && len(g.items) > 0 {
				n := passageTarget - passageCount
				if n > len(g.items) {
					n = len(g.items)
				}
				taken[i] = n
				passageCount += n
				break
			}
		}
	}

	// Remaining slots come from randomly sampled standalone questions.
	shuffled := append([]question.Question(nil), standalone...)
	a.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	need := requested - passageCount
	if need > len(shuffled) {
		need = len(shuffled)
	}
	selectedStandalone := shuffled[:need]
	total := passageCount + need

	// When the standalone pool runs dry, fill from passage questions the
	// target left behind. Extends a truncated group before opening a new
	// one, so group members stay adjacent.
	for i := range groups {
		if total >= requested {
			break
		}
		room := len(groups[i].items) - taken[i]
		if room == 0 {
			continue
		}
		n := requested - total
		if n > room {
			n = room
		}
		taken[i] += n
		total += n
	}

	// Final order: passage blocks and standalone questions shuffled
	// relative to each other, never interleaved inside a block.
	var blocks [][]question.Question
	for i, g := range groups {
		if taken[i] > 0 {
			blocks = append(blocks, g.items[:taken[i]])
		}
	}
	for i := range selectedStandalone {
		blocks = append(blocks, selectedStandalone[i:i+1])
	}
	a.rnd.Shuffle(len(blocks), func(i, j int) {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	})

	selected := make([]question.Question, 0, requested)
	for _, b := range blocks {
		selected = append(selected, b...)
	}
	return selected, nil
}

// groupByPassage keeps the repository's creation order both across
// groups and inside each group.
func groupByPassage(passageAttached []question.Question) []passageGroup {
	index := map[uuid.UUID]int{}
	var groups []passageGroup

	for _, q := range passageAttached {
		if q.PassageID == nil {
			continue
		}
		i, ok := index[*q.PassageID]
		if !ok {
			i = len(groups)
			index[*q.PassageID] = i
			groups = append(groups, passageGroup{passageID: *q.PassageID})
		}
		groups[i].items = append(groups[i].items, q)
	}
	return groups
}

func groupInfos(groups []passageGroup) []PassageGroupInfo {
	infos := make([]PassageGroupInfo, 0, len(groups))
	for _, g := range groups {
		infos = append(infos, PassageGroupInfo{PassageID: g.passageID, Size: len(g.items)})
	}
	return infos
}
