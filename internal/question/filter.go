package question

import "gorm.io/gorm"

// Filter narrows bank queries by subject and unit. Empty slices mean
// "no restriction"; the query is built from the value object instead of
// ad hoc conditionals.
type Filter struct {
	Subjects []string
	Units    []string
}

func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	if len(f.Subjects) > 0 {
		tx = tx.Where("subject IN ?", f.Subjects)
	}
	if len(f.Units) > 0 {
		tx = tx.Where("unit IN ?", f.Units)
	}
	return tx
}
