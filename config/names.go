package config

import (
	"os"
	"strings"
	"unicode/utf8"
)

const (
	badFileName = "_bad_file_name_"
	// maxFileNameBytes leaves room for ".html" and versioning suffixes on
	// file systems limiting names to 255 bytes.
	maxFileNameBytes = 240
)

// CleanFileName removes characters not allowed in file names on the current
// platform, leading dots and surrounding spaces. Long names are cut on rune
// boundary.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym < ' ' || sym == os.PathSeparator || sym == os.PathListSeparator || strings.ContainsRune(reservedChars, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimSpace(strings.TrimLeft(out, "."))
	for len(out) > maxFileNameBytes {
		_, size := utf8.DecodeLastRuneInString(out)
		out = out[:len(out)-size]
	}
	if len(out) == 0 {
		return badFileName
	}
	return out
}
