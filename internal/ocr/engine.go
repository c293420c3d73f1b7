package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/GSam/Capture2Text/internal/geom"
)

// ErrEmptyImage is returned when Recognize is given an image with no pixels.
var ErrEmptyImage = errors.New("empty image")

// cjkVerticalVars improve Japanese and Chinese accuracy on vertical text.
var cjkVerticalVars = map[string]string{
	"tessedit_enable_dict_correction": "1",
	"textord_really_old_xheight":      "1",
	"tosp_threshold_bias2":            "1",
	"classify_norm_adj_midpoint":      "96",
	"tessedit_class_miss_scale":       "0.002",
	"textord_initialx_ile":            "1.0",
}

// Options selects how one image is read.
type Options struct {
	// Language is a Tesseract language code such as "eng" or "jpn".
	Language string `json:"language"`

	// Vertical reads top-to-bottom columns.
	Vertical bool `json:"vertical"`

	// SingleLine reads the image as one line of text. For vertical text it
	// only adjusts the CJK line size tuning.
	SingleLine bool `json:"single_line"`

	// Whitelist and Blacklist restrict the characters Tesseract may output.
	Whitelist string `json:"whitelist,omitempty"`
	Blacklist string `json:"blacklist,omitempty"`
}

// Line is one recognized line of text.
type Line struct {
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Bounds     geom.Rect `json:"bounds"`
}

// Result is the raw output of one recognition.
type Result struct {
	// Text is the text as Tesseract returned it, before PostProcess.
	Text string `json:"text"`

	// Lines may be empty when line boxes are unavailable; Text is still set.
	Lines []Line `json:"lines"`

	// Language is the Tesseract language string actually used.
	Language string `json:"language"`
}

// Engine runs Tesseract. One client is kept and reused while consecutive
// calls ask for the same Options, and is rebuilt when they change.
//
// Engine is safe for concurrent use; recognitions are serialized.
type Engine struct {
	tessdata string

	mu     sync.Mutex
	client *gosseract.Client
	key    Options
	lang   string
}

// NewEngine returns an engine loading traineddata from tessdata, or from
// Tesseract's default location when tessdata is empty.
func NewEngine(tessdata string) *Engine {
	return &Engine{tessdata: tessdata}
}

// Version returns the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}

// Recognize reads the text in img.
//
// The context is checked before the image is handed to Tesseract; a running
// recognition is not interrupted.
func (e *Engine) Recognize(ctx context.Context, img image.Image, opts Options) (*Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image for tesseract: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := e.clientFor(opts)
	if err != nil {
		return nil, err
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("tesseract set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract recognize: %w", err)
	}

	res := &Result{
		Text:     text,
		Lines:    []Line{},
		Language: e.lang,
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		// Return just the text if boxes fail
		return res, nil
	}
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		res.Lines = append(res.Lines, Line{
			Text:       word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     geom.RectFromImage(box.Box),
		})
	}

	return res, nil
}

// Close releases the Tesseract client. The engine can be used again after
// Close; a new client is created on demand.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

// clientFor returns a client configured for opts. Callers hold e.mu.
func (e *Engine) clientFor(opts Options) (*gosseract.Client, error) {
	if e.client != nil && e.key == opts {
		return e.client, nil
	}

	if e.client != nil {
		e.client.Close()
		e.client = nil
	}

	client := gosseract.NewClient()
	lang, err := e.configure(client, opts)
	if err != nil {
		client.Close()
		return nil, err
	}

	e.client, e.key, e.lang = client, opts, lang
	return client, nil
}

// configure applies opts to client and returns the language string set.
func (e *Engine) configure(client *gosseract.Client, opts Options) (string, error) {
	if e.tessdata != "" {
		if err := client.SetTessdataPrefix(e.tessdata); err != nil {
			return "", fmt.Errorf("tesseract data path: %w", err)
		}
	}

	lang := languageSpec(opts.Language, e.tessdata)
	if err := client.SetLanguage(lang); err != nil {
		return "", fmt.Errorf("tesseract language %q: %w", lang, err)
	}

	mode := gosseract.PSM_SINGLE_BLOCK
	switch {
	case opts.Vertical:
		mode = gosseract.PSM_SINGLE_BLOCK_VERT_TEXT
	case opts.SingleLine:
		mode = gosseract.PSM_SINGLE_LINE
	}
	if err := client.SetPageSegMode(mode); err != nil {
		return "", fmt.Errorf("tesseract page segmentation: %w", err)
	}

	if opts.Vertical && IsCJK(opts.Language) {
		vars := make(map[string]string, len(cjkVerticalVars)+1)
		for k, v := range cjkVerticalVars {
			vars[k] = v
		}
		// Larger values confuse Tesseract when lines are close together.
		vars["textord_min_linesize"] = "2.0"
		if opts.SingleLine {
			vars["textord_min_linesize"] = "2.5"
		}
		for k, v := range vars {
			if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
				return "", fmt.Errorf("tesseract variable %s: %w", k, err)
			}
		}
	}

	if err := client.SetWhitelist(opts.Whitelist); err != nil {
		return "", fmt.Errorf("tesseract whitelist: %w", err)
	}
	if err := client.SetBlacklist(opts.Blacklist); err != nil {
		return "", fmt.Errorf("tesseract blacklist: %w", err)
	}
	return lang, nil
}
