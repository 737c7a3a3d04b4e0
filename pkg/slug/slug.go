package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

// accentToASCII folds the Portuguese diacritics to plain letters
var accentToASCII = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'ä': "a",
	'Á': "a", 'À': "a", 'Â': "a", 'Ã': "a", 'Ä': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'É': "e", 'È': "e", 'Ê': "e", 'Ë': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'Í': "i", 'Ì': "i", 'Î': "i", 'Ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o", 'ö': "o",
	'Ó': "o", 'Ò': "o", 'Ô': "o", 'Õ': "o", 'Ö': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'Ú': "u", 'Ù': "u", 'Û': "u", 'Ü': "u",
	'ç': "c", 'Ç': "c",
	'ñ': "n", 'Ñ': "n",
}

var (
	nonSlugRegex = regexp.MustCompile(`[^a-z0-9]+`)
	extRegex     = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// Generate turns a display name into a URL and key friendly slug.
// Example: "João da Conceição" -> "joao-da-conceicao"
func Generate(name string) string {
	var result strings.Builder
	for _, char := range name {
		if ascii, exists := accentToASCII[char]; exists {
			result.WriteString(ascii)
		} else {
			result.WriteRune(char)
		}
	}

	s := strings.ToLower(result.String())
	s = nonSlugRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateFileName slugs the base name and keeps a sane lowercase extension.
// Example: "Currículo Ana.PDF" -> "curriculo-ana.pdf"
func GenerateFileName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !extRegex.MatchString(ext) {
		ext = ""
	}

	base := Generate(fileName[:len(fileName)-len(ext)])
	if base == "" {
		base = "arquivo"
	}
	return base + ext
}
