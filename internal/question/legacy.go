package question

import (
	"encoding/json"
	"errors"
	"regexp"

	"gorm.io/datatypes"
)

// Early content dumps flagged the answer inside the choices markup as
// data-choice="X" data-correct="true". NormalizeLegacyChoices converts
// that markup into the structured Choices JSON plus CorrectChoice once,
// at import time.
var (
	choicePattern = regexp.MustCompile(`(?s)<li[^>]*data-choice="([^"]+)"([^>]*)>(.*?)</li>`)
	correctMarker = regexp.MustCompile(`data-correct="true"`)
)

var ErrNoCorrectChoice = errors.New("legacy markup has no choice flagged correct")

func NormalizeLegacyChoices(markup string) (datatypes.JSON, string, error) {
	matches := choicePattern.FindAllStringSubmatch(markup, -1)
	if len(matches) == 0 {
		return nil, "", errors.New("legacy markup has no choices")
	}

	var choices []Choice
	correct := ""
	for _, m := range matches {
		id, attrs, text := m[1], m[2], m[3]
		choices = append(choices, Choice{ID: id, Text: text})
		if correctMarker.MatchString(attrs) {
			correct = id
		}
	}
	if correct == "" {
		return nil, "", ErrNoCorrectChoice
	}

	encoded, err := json.Marshal(choices)
	if err != nil {
		return nil, "", err
	}
	return datatypes.JSON(encoded), correct, nil
}
