package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

// Decode turns raw page bytes into a string. Valid UTF-8 passes through;
// anything else is charset-detected and transcoded.
func Decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	res, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		return "", fmt.Errorf("%w: detect charset: %v", internalerr.ErrDecode, err)
	}

	enc, _ := charset.Lookup(res.Charset)
	if enc == nil {
		return "", fmt.Errorf("%w: unsupported charset %q", internalerr.ErrDecode, res.Charset)
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", internalerr.ErrDecode, res.Charset, err)
	}
	s := string(out)
	if !utf8.ValidString(s) || strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("%w: %s produced invalid text", internalerr.ErrDecode, res.Charset)
	}
	return s, nil
}
