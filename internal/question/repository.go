package question

import (
	"gorm.io/gorm"
)

type QuestionRepository interface {
	// FindStandalone returns non-passage questions without a parent
	// passage matching the filter.
	FindStandalone(f Filter) ([]Question, error)
	// FindPassageAttached returns non-passage questions that belong to a
	// passage, with the parent passage preloaded.
	FindPassageAttached(f Filter) ([]Question, error)
	CountBySubjectAndUnit() (AvailabilityReport, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindStandalone(f Filter) ([]Question, error) {
	var questions []Question
	tx := f.apply(r.db.Where("is_passage = ? AND passage_id IS NULL", false))
	if err := tx.Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindPassageAttached(f Filter) ([]Question, error) {
	var questions []Question
	tx := f.apply(r.db.Where("is_passage = ? AND passage_id IS NOT NULL", false))
	if err := tx.Preload("Passage").Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountBySubjectAndUnit() (AvailabilityReport, error) {
	type row struct {
		Subject *string
		Unit    *string
		Count   int
	}

	var rows []row
	err := r.db.Model(&Question{}).
		Select("subject, unit, count(*) as count").
		Where("is_passage = ?", false).
		Group("subject, unit").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	report := AvailabilityReport{}
	for _, rw := range rows {
		subject := "uncategorized"
		if rw.Subject != nil {
			subject = *rw.Subject
		}
		unit := "uncategorized"
		if rw.Unit != nil {
			unit = *rw.Unit
		}

		entry, ok := report[subject]
		if !ok {
			entry = &SubjectAvailability{Units: map[string]int{}}
			report[subject] = entry
		}
		entry.Units[unit] += rw.Count
		entry.TotalCount += rw.Count
	}
	return report, nil
}
