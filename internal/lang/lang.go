// Package lang provides the small amount of localization the dialogue
// engine needs: detecting which language a message is written in and
// rendering the missing-information prompt in it.
package lang

import "strings"

// DefaultCode is used when detection cannot decide.
const DefaultCode = "tr"

// prompts holds the missing-information prompt per language code.
var prompts = map[string]string{
	"en": "Please provide the missing information:",
	"tr": "Eksik bilgileri girin:",
	"de": "Bitte geben Sie die fehlenden Informationen ein:",
	"fr": "Veuillez fournir les informations manquantes :",
	"es": "Por favor, proporcione la información faltante:",
}

// failures holds the generic could-not-process message per language code.
var failures = map[string]string{
	"en": "Sorry, something went wrong. Please try again.",
	"tr": "Üzgünüm, bir şeyler ters gitti. Lütfen tekrar deneyin.",
	"de": "Entschuldigung, etwas ist schiefgelaufen. Bitte versuchen Sie es erneut.",
	"fr": "Désolé, une erreur s'est produite. Veuillez réessayer.",
	"es": "Lo sentimos, algo salió mal. Por favor, inténtelo de nuevo.",
}

// Prompt returns the missing-information prompt for code, falling back to
// English for unknown codes.
func Prompt(code string) string {
	if p, ok := prompts[code]; ok {
		return p
	}
	return prompts["en"]
}

// Failure returns the generic failure message for code, falling back to
// English for unknown codes.
func Failure(code string) string {
	if f, ok := failures[code]; ok {
		return f
	}
	return failures["en"]
}

// markers are words and characters strongly associated with one of the
// supported languages. Scoring is a plain count of hits; a tie goes to
// the language listed first in markerOrder.
var markerOrder = []string{"tr", "en", "de", "fr", "es"}

var markers = map[string][]string{
	"tr": {"ı", "ğ", "ş", "bir", "ve", "için", "randevu", "merhaba", "lütfen", "değil", "evet", "hayır"},
	"en": {"the", "and", "for", "what", "appointment", "please", "hello", "want", "my", "is"},
	"de": {"ß", "der", "die", "das", "und", "ich", "nicht", "termin", "bitte", "für"},
	"fr": {"le", "la", "les", "je", "est", "vous", "rendez-vous", "bonjour", "pas", "une"},
	"es": {"el", "los", "las", "una", "que", "por", "cita", "hola", "usted", "gracias"},
}

// Detect guesses the language of message by counting marker words and
// characters, returning a language code and whether anything matched.
func Detect(message string) (string, bool) {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '.' || r == '?' || r == '!'
	})
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	best, bestScore := "", 0
	for _, code := range markerOrder {
		score := 0
		for _, m := range markers[code] {
			if len([]rune(m)) == 1 {
				if strings.Contains(lower, m) {
					score++
				}
			} else if wordSet[m] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = code, score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

// DetectOrDefault is Detect with the fallback applied.
func DetectOrDefault(message string) string {
	if code, ok := Detect(message); ok {
		return code
	}
	return DefaultCode
}
