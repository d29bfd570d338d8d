package services

import (
	"strings"
)

// englishToWelsh holds the day and month names used in appointment dates, keyed in lower case
var englishToWelsh = map[string]string{
	// Days
	"monday":    "Dydd Llun",
	"tuesday":   "Dydd Mawrth",
	"wednesday": "Dydd Mercher",
	"thursday":  "Dydd Iau",
	"friday":    "Dydd Gwener",
	"saturday":  "Dydd Sadwrn",
	"sunday":    "Dydd Sul",

	// Months
	"january":   "Ionawr",
	"february":  "Chwefror",
	"march":     "Mawrth",
	"april":     "Ebrill",
	"may":       "Mai",
	"june":      "Mehefin",
	"july":      "Gorffennaf",
	"august":    "Awst",
	"september": "Medi",
	"october":   "Hydref",
	"november":  "Tachwedd",
	"december":  "Rhagfyr",
}

type translationService struct{}

// NewTranslationService creates a service translating date words into Welsh
func NewTranslationService() *translationService {
	return &translationService{}
}

// ToWelsh translates a single day or month name, ignoring case.
// Words without a translation are returned unchanged.
func (s *translationService) ToWelsh(english string) string {
	if welsh, ok := englishToWelsh[strings.ToLower(english)]; ok {
		return welsh
	}
	return english
}

// TranslateWords translates each space-separated word of text
func (s *translationService) TranslateWords(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		words[i] = s.ToWelsh(word)
	}
	return strings.Join(words, " ")
}
