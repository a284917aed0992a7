package service

import (
	"binakata/internal/models"
	"binakata/internal/scoring"
)

// screeningBattery is the fixed item sequence of every new assessment.
// Letters and words are the b/d/p and k/b confusions common in early readers.
var screeningBattery = []models.AssessmentItem{
	{ItemType: models.ItemLetter, Prompt: "A"},
	{ItemType: models.ItemLetter, Prompt: "B"},
	{ItemType: models.ItemLetter, Prompt: "D"},
	{ItemType: models.ItemLetter, Prompt: "P"},
	{ItemType: models.ItemWord, Prompt: "Paku"},
	{ItemType: models.ItemWord, Prompt: "Baku"},
	{ItemType: models.ItemWord, Prompt: "Kuda"},
	{ItemType: models.ItemWord, Prompt: "Buku"},
	{ItemType: models.ItemArrange, Prompt: scoring.ArrangePrompt("K U C I N G", "KUCING")},
}

// ScreeningBattery returns a copy of the item sequence used for new assessments
func ScreeningBattery() []models.AssessmentItem {
	items := make([]models.AssessmentItem, len(screeningBattery))
	copy(items, screeningBattery)
	return items
}
