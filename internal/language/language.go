package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-2 primary
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // human-readable name
	words   []string // full word forms
}

var languages = []entry{
	{"bn", "ben", "", "Bengali", []string{"bengali", "bangla"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"ur", "urd", "", "Urdu", []string{"urdu"}},
	{"ta", "tam", "", "Tamil", []string{"tamil"}},
	{"te", "tel", "", "Telugu", []string{"telugu"}},
	{"mr", "mar", "", "Marathi", []string{"marathi"}},
	{"as", "asm", "", "Assamese", []string{"assamese"}},
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1.
// Unrecognized two-letter codes pass through; anything else returns "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable name for any recognized code.
// Region-tagged codes resolve by their primary subtag ("bn-IN" is still
// Bengali). Unrecognized codes come back uppercased, empty input as
// "Unknown".
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	primary, _, _ := strings.Cut(strings.TrimSpace(code), "-")
	if e := lookup(primary); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Normalize maps one language code to ISO 639-1. Only the primary subtag
// is rewritten; a region subtag keeps its case because yt-dlp names
// subtitle tracks with it verbatim ("bn-IN", never "bn-in"). Unmappable
// primaries are kept as typed so an unusual track code still matches.
func Normalize(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	primary, rest, tagged := strings.Cut(trimmed, "-")
	primary = strings.ToLower(primary)
	if mapped := ToISO2(primary); mapped != "" {
		primary = mapped
	}
	if tagged {
		return primary + "-" + rest
	}
	return primary
}

// NormalizeList deduplicates and normalizes a list of language codes,
// preserving order.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		mapped := Normalize(code)
		if mapped == "" {
			continue
		}
		if _, ok := seen[mapped]; ok {
			continue
		}
		seen[mapped] = struct{}{}
		normalized = append(normalized, mapped)
	}
	return normalized
}
