// Package config loads server settings from a YAML or JSON file and
// CAPTURE2TEXT_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	yaml "gopkg.in/yaml.v3"

	"github.com/GSam/Capture2Text/internal/ocr"
	"github.com/GSam/Capture2Text/internal/preprocess"
)

// EnvPrefix prefixes every environment variable ApplyEnv reads.
const EnvPrefix = "CAPTURE2TEXT_"

// OCR configures the Tesseract engine and post-processing.
type OCR struct {
	Language       string `yaml:"language" json:"language"`
	Tessdata       string `yaml:"tessdata" json:"tessdata"`
	Whitelist      string `yaml:"whitelist" json:"whitelist"`
	Blacklist      string `yaml:"blacklist" json:"blacklist"`
	KeepLineBreaks bool   `yaml:"keepLineBreaks" json:"keepLineBreaks"`
}

// Preprocess configures binarization and furigana erasure.
type Preprocess struct {
	ScaleFactor    float64 `yaml:"scaleFactor" json:"scaleFactor"`
	Vertical       bool    `yaml:"vertical" json:"vertical"`
	RemoveFurigana bool    `yaml:"removeFurigana" json:"removeFurigana"`
}

// TextLine configures the bounding rect search, in source pixels.
type TextLine struct {
	Lookahead    int `yaml:"lookahead" json:"lookahead"`
	Lookbehind   int `yaml:"lookbehind" json:"lookbehind"`
	SearchRadius int `yaml:"searchRadius" json:"searchRadius"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level" json:"level"`
}

// File is the configuration file schema.
type File struct {
	OCR          OCR               `yaml:"ocr" json:"ocr"`
	Preprocess   Preprocess        `yaml:"preprocess" json:"preprocess"`
	TextLine     TextLine          `yaml:"textLine" json:"textLine"`
	Log          Log               `yaml:"log" json:"log"`
	Replacements []ocr.Replacement `yaml:"replacements" json:"replacements"`
}

// Default returns the built-in settings.
func Default() File {
	return File{
		OCR: OCR{Language: ocr.DefaultLanguage},
		Preprocess: Preprocess{
			ScaleFactor: preprocess.DefaultScale,
		},
		TextLine: TextLine{
			Lookahead:    preprocess.DefaultLookahead,
			Lookbehind:   preprocess.DefaultLookbehind,
			SearchRadius: preprocess.DefaultSearchRadius,
		},
		Log: Log{Level: "info"},
	}
}

// Load returns Default overlaid with the file at path, then with the
// environment. An empty path skips the file. The result is validated.
func Load(path string) (File, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFile reads YAML or JSON into cfg. Keys absent from the file keep
// their current values.
func loadFile(path string, cfg *File) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, cfg); err != nil {
			if jerr := json.Unmarshal(b, cfg); jerr != nil {
				return fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return nil
}

// ApplyEnv overrides cfg with every CAPTURE2TEXT_* variable that is set and
// non-empty. Malformed numbers and booleans are reported.
func ApplyEnv(cfg *File) error {
	if cfg == nil {
		return nil
	}

	setString(&cfg.OCR.Language, "LANGUAGE")
	setString(&cfg.OCR.Tessdata, "TESSDATA")
	setString(&cfg.OCR.Whitelist, "WHITELIST")
	setString(&cfg.OCR.Blacklist, "BLACKLIST")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	return errors.Join(
		setBool(&cfg.OCR.KeepLineBreaks, "KEEP_LINE_BREAKS"),
		setBool(&cfg.Preprocess.Vertical, "VERTICAL"),
		setBool(&cfg.Preprocess.RemoveFurigana, "REMOVE_FURIGANA"),
		setFloat(&cfg.Preprocess.ScaleFactor, "SCALE_FACTOR"),
		setInt(&cfg.TextLine.Lookahead, "LOOKAHEAD"),
		setInt(&cfg.TextLine.Lookbehind, "LOOKBEHIND"),
		setInt(&cfg.TextLine.SearchRadius, "SEARCH_RADIUS"),
	)
}

func lookupEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookupEnv(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("%s%s: invalid boolean %q", EnvPrefix, key, v)
	}
	return nil
}

func setInt(dst *int, key string) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = f
	return nil
}

// Validate reports every invalid setting.
func (f File) Validate() error {
	var errs []error
	if strings.TrimSpace(f.OCR.Language) == "" {
		errs = append(errs, errors.New("ocr.language must not be empty"))
	}
	if s := f.Preprocess.ScaleFactor; s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		errs = append(errs, fmt.Errorf("preprocess.scaleFactor must be a positive number, got %v", s))
	}
	if f.TextLine.Lookahead < 0 {
		errs = append(errs, fmt.Errorf("textLine.lookahead must not be negative, got %d", f.TextLine.Lookahead))
	}
	if f.TextLine.Lookbehind < 0 {
		errs = append(errs, fmt.Errorf("textLine.lookbehind must not be negative, got %d", f.TextLine.Lookbehind))
	}
	if f.TextLine.SearchRadius < 0 {
		errs = append(errs, fmt.Errorf("textLine.searchRadius must not be negative, got %d", f.TextLine.SearchRadius))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(f.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := ocr.CompileRules(f.Replacements); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LogLevel returns the configured zerolog level, or info when unset or
// invalid.
func (f File) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(f.Log.Level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// PreprocessOptions returns the pipeline options these settings describe.
func (f File) PreprocessOptions() preprocess.Options {
	return preprocess.Options{
		Scale:          f.Preprocess.ScaleFactor,
		Vertical:       f.Preprocess.Vertical,
		RemoveFurigana: f.Preprocess.RemoveFurigana,
		Lookahead:      f.TextLine.Lookahead,
		Lookbehind:     f.TextLine.Lookbehind,
		SearchRadius:   f.TextLine.SearchRadius,
	}
}

// OCROptions returns the engine options these settings describe.
func (f File) OCROptions() ocr.Options {
	return ocr.Options{
		Language:  f.OCR.Language,
		Vertical:  f.Preprocess.Vertical,
		Whitelist: f.OCR.Whitelist,
		Blacklist: f.OCR.Blacklist,
	}
}
