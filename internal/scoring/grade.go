package scoring

import (
	"strings"
	"unicode"

	"binakata/internal/models"
)

// ArrangeSeparator splits an arrange prompt into its scrambled display and target word
const ArrangeSeparator = "->"

// Grade reports whether answer is correct for a prompt of the given item type.
// Unknown item types are never correct.
func Grade(itemType models.ItemType, prompt, answer string) bool {
	switch itemType {
	case models.ItemLetter:
		return strings.ToUpper(strings.TrimSpace(answer)) == strings.ToUpper(strings.TrimSpace(prompt))
	case models.ItemWord:
		return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(strings.TrimSpace(prompt))
	case models.ItemArrange:
		return strings.ToUpper(stripSpace(answer)) == strings.ToUpper(ArrangeTarget(prompt))
	default:
		return false
	}
}

// ArrangeTarget extracts the expected word from a "<scrambled> -> <TARGET>" prompt.
// A prompt without the separator has an empty target.
func ArrangeTarget(prompt string) string {
	_, target, found := strings.Cut(prompt, ArrangeSeparator)
	if !found {
		return ""
	}
	return strings.TrimSpace(target)
}

// ArrangePrompt builds the stored prompt for an arrange item
func ArrangePrompt(scrambled, target string) string {
	return scrambled + " " + ArrangeSeparator + " " + target
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
