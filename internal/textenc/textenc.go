// Package textenc prepares date arguments that arrive in legacy Japanese
// encodings or in full-width characters.
package textenc

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-wareki/internal/config"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// encodings maps accepted names to decoders. UTF-8 maps to nil: no decoding.
var encodings = map[string]encoding.Encoding{
	"":            nil,
	"utf-8":       nil,
	"utf8":        nil,
	"shift_jis":   japanese.ShiftJIS,
	"shift-jis":   japanese.ShiftJIS,
	"sjis":        japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"eucjp":       japanese.EUCJP,
	"iso-2022-jp": japanese.ISO2022JP,
}

// Lookup returns the encoding registered under name (case-insensitive).
// UTF-8 yields a nil encoding.
func Lookup(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%s: %q", config.ErrEncoding, name)
	}
	return enc, nil
}

// Decode converts s from the named encoding to UTF-8.
func Decode(s, name string) (string, error) {
	return Normalize(s, name, false)
}

// FoldWidth maps full-width digits and punctuation (２０１９／５／１) to their
// ASCII forms. Kanji such as 年 are left alone.
func FoldWidth(s string) string {
	return width.Narrow.String(s)
}

// Normalize decodes s from the named encoding and, when fold is set, folds
// full-width characters to ASCII in the same pass.
func Normalize(s, name string, fold bool) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}

	var chain []transform.Transformer
	if enc != nil {
		chain = append(chain, enc.NewDecoder())
	}
	if fold {
		chain = append(chain, width.Narrow)
	}
	if len(chain) == 0 {
		return s, nil
	}

	out, _, err := transform.String(transform.Chain(chain...), s)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrDecode, err)
	}
	return out, nil
}
