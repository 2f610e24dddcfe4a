// Package naming derives output filenames that carry a file's earliest
// known instant as a sortable prefix.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// stampLayout renders an instant as YYYYMMDDHHMMSS±HHMM in the local
// zone. Compact on purpose: the prefix sorts lexicographically in
// chronological order within one zone.
const stampLayout = "20060102150405-0700"

// Two stamp generations exist in the wild: the current compact form and
// a legacy hyphenated form without an offset. Both are recognized as
// already stamped; only the compact form is ever generated. Legacy names
// are left untouched — rewriting them would break external references.
var (
	stampPattern       = regexp.MustCompile(`^\d{14}[+-]\d{4}_`)
	legacyStampPattern = regexp.MustCompile(`^\d{8}-\d{6}`)
)

// OutputName derives the destination filename for a source name and its
// resolved earliest instant: "<stamp>_<cleaned stem><ext>". Spaces in
// the stem become underscores; the extension is kept as-is.
func OutputName(name string, earliest time.Time) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	stem = strings.ReplaceAll(stem, " ", "_")
	return earliest.Local().Format(stampLayout) + "_" + stem + ext
}

// Stamped reports whether name already carries a timestamp prefix, in
// either the compact or the legacy form. Stamped names are excluded
// from needs-renaming scans, which makes OutputName idempotent across
// runs.
func Stamped(name string) bool {
	return stampPattern.MatchString(name) || legacyStampPattern.MatchString(name)
}
