package ocr

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "eng"

// verticalCapable lists the languages that ship a separate model for
// top-to-bottom text.
var verticalCapable = map[string]bool{
	"jpn":     true,
	"chi_sim": true,
	"chi_tra": true,
	"kor":     true,
}

// IsCJK reports whether lang is Japanese or Chinese, whose text is written
// without spaces between words. lang may carry a "_vert" suffix or be a
// "+"-joined list, in which case the first entry decides.
func IsCJK(lang string) bool {
	base := baseLanguage(lang)
	return base == "jpn" || base == "chi_sim" || base == "chi_tra"
}

// languageSpec returns the Tesseract language string for lang. Languages
// with a vertical model get it appended when its traineddata is installed in
// tessdata.
func languageSpec(lang, tessdata string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = DefaultLanguage
	}
	if !verticalCapable[lang] || !hasTrainedData(tessdata, lang+"_vert") {
		return lang
	}
	return lang + "+" + lang + "_vert"
}

// hasTrainedData reports whether <dir>/<lang>.traineddata exists. An empty
// dir falls back to TESSDATA_PREFIX.
func hasTrainedData(dir, lang string) bool {
	if dir == "" {
		dir = os.Getenv("TESSDATA_PREFIX")
	}
	if dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, lang+".traineddata"))
	return err == nil
}

func baseLanguage(lang string) string {
	lang, _, _ = strings.Cut(strings.TrimSpace(lang), "+")
	return strings.TrimSuffix(lang, "_vert")
}
