package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

// Language is a resolved translation language.
type Language struct {
	Code string // ISO 639-1 (2-letter)
	Name string // Canonical display name
}

type entry struct {
	code   string   // ISO 639-1
	words  []string // Accepted lowercase names; the first is canonical
	prompt string   // Model-facing description when the plain name is ambiguous
}

var languages = []entry{
	{"af", []string{"afrikaans"}, ""},
	{"am", []string{"amharic"}, ""},
	{"ar", []string{"arabic"}, ""},
	{"as", []string{"assamese"}, ""},
	{"az", []string{"azerbaijani"}, ""},
	{"ba", []string{"bashkir"}, ""},
	{"be", []string{"belarusian"}, ""},
	{"bg", []string{"bulgarian"}, ""},
	{"bn", []string{"bengali"}, ""},
	{"bo", []string{"tibetan"}, ""},
	{"br", []string{"breton"}, ""},
	{"bs", []string{"bosnian"}, ""},
	{"ca", []string{"catalan"}, ""},
	{"cs", []string{"czech"}, ""},
	{"cy", []string{"welsh"}, ""},
	{"da", []string{"danish"}, ""},
	{"de", []string{"german"}, ""},
	{"el", []string{"greek"}, ""},
	{"en", []string{"english"}, ""},
	{"es", []string{"spanish"}, ""},
	{"et", []string{"estonian"}, ""},
	{"eu", []string{"basque"}, ""},
	{"fa", []string{"persian"}, ""},
	{"fi", []string{"finnish"}, ""},
	{"fo", []string{"faroese"}, ""},
	{"fr", []string{"french"}, ""},
	{"gl", []string{"galician"}, ""},
	{"gu", []string{"gujarati"}, ""},
	{"ha", []string{"hausa"}, ""},
	{"haw", []string{"hawaiian"}, ""},
	{"he", []string{"hebrew"}, ""},
	{"hi", []string{"hindi"}, ""},
	{"hr", []string{"croatian"}, ""},
	{"ht", []string{"haitian"}, ""},
	{"hu", []string{"hungarian"}, ""},
	{"hy", []string{"armenian"}, ""},
	{"id", []string{"indonesian"}, ""},
	{"is", []string{"icelandic"}, ""},
	{"it", []string{"italian"}, ""},
	{"ja", []string{"japanese"}, ""},
	{"jw", []string{"javanese"}, ""},
	{"ka", []string{"georgian"}, ""},
	{"kk", []string{"kazakh"}, ""},
	{"km", []string{"khmer"}, ""},
	{"kn", []string{"kannada"}, ""},
	{"ko", []string{"korean"}, ""},
	{"la", []string{"latin"}, ""},
	{"lb", []string{"luxembourgish"}, ""},
	{"ln", []string{"lingala"}, ""},
	{"lo", []string{"lao"}, ""},
	{"lt", []string{"lithuanian"}, ""},
	{"lv", []string{"latvian"}, ""},
	{"mg", []string{"malagasy"}, ""},
	{"mi", []string{"maori"}, ""},
	{"mk", []string{"macedonian"}, ""},
	{"ml", []string{"malayalam"}, ""},
	{"mn", []string{"mongolian"}, ""},
	{"mr", []string{"marathi"}, ""},
	{"ms", []string{"malay"}, ""},
	{"mt", []string{"maltese"}, ""},
	{"my", []string{"burmese"}, ""},
	{"ne", []string{"nepali"}, ""},
	{"nl", []string{"dutch"}, ""},
	{"nn", []string{"nynorsk"}, ""},
	{"no", []string{"norwegian"}, ""},
	{"oc", []string{"occitan"}, ""},
	{"pa", []string{"punjabi"}, ""},
	{"pl", []string{"polish"}, ""},
	{"ps", []string{"pashto"}, ""},
	{"pt", []string{"portuguese"}, ""},
	{"ro", []string{"romanian"}, ""},
	{"ru", []string{"russian"}, ""},
	{"sa", []string{"sanskrit"}, ""},
	{"sd", []string{"sindhi"}, ""},
	{"si", []string{"sinhala"}, ""},
	{"sk", []string{"slovak"}, ""},
	{"sl", []string{"slovenian"}, ""},
	{"sn", []string{"shona"}, ""},
	{"so", []string{"somali"}, ""},
	{"sq", []string{"albanian"}, ""},
	{"sr", []string{"serbian"}, ""},
	{"su", []string{"sundanese"}, ""},
	{"sv", []string{"swedish"}, ""},
	{"sw", []string{"swahili"}, ""},
	{"ta", []string{"tamil"}, ""},
	{"te", []string{"telugu"}, ""},
	{"tg", []string{"tajik"}, ""},
	{"th", []string{"thai"}, ""},
	{"tk", []string{"turkmen"}, ""},
	{"tl", []string{"tagalog"}, ""},
	{"tr", []string{"turkish"}, ""},
	{"tt", []string{"tatar"}, ""},
	{"uk", []string{"ukrainian"}, ""},
	{"ur", []string{"urdu"}, ""},
	{"uz", []string{"uzbek"}, ""},
	{"vi", []string{"vietnamese"}, ""},
	{"yi", []string{"yiddish"}, ""},
	{"yo", []string{"yoruba"}, ""},
	{"yue", []string{"cantonese"}, ""},
	// "Chinese" is ambiguous, so prompts describe the exact target script.
	{"zh", []string{"chinese", "traditional chinese", "taiwanese"}, "Traditional Chinese (Taiwan, 繁體中文)"},
}

// Index maps built at init time.
var (
	byCode map[string]*entry
	byWord map[string]*entry
	titler = cases.Title(xlang.English)
)

func init() {
	byCode = make(map[string]*entry, len(languages))
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode[e.code] = e
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

// Parse resolves user input, accepting either a language name or an ISO
// 639-1 code. The second return reports whether the input was recognized.
func Parse(input string) (Language, bool) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return Language{}, false
	}
	if e, ok := byWord[lower]; ok {
		return Language{Code: e.code, Name: titler.String(e.words[0])}, true
	}
	if e, ok := byCode[lower]; ok {
		return Language{Code: e.code, Name: titler.String(e.words[0])}, true
	}
	return Language{}, false
}

// Fallback builds a Language from unrecognized input so callers can pass
// the value through to the backend as typed. The code is a best-effort
// two-letter prefix.
func Fallback(input string) Language {
	trimmed := strings.TrimSpace(input)
	code := strings.ToLower(trimmed)
	if len(code) > 2 {
		code = code[:2]
	}
	return Language{Code: code, Name: trimmed}
}

// PromptName returns the description to use in translation prompts. Most
// languages use their display name; ambiguous ones carry an explicit
// script and region.
func (l Language) PromptName() string {
	if e, ok := byWord[strings.ToLower(l.Name)]; ok && e.prompt != "" {
		return e.prompt
	}
	return l.Name
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return l.Name
}
