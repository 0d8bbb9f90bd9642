package mrz

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// LineLength is the length of every MRZ line.
	LineLength = 44
	// Filler pads MRZ fields.
	Filler = '<'
	// NameWidth is the width of each name field in line 1.
	NameWidth = 20
	// FillerRun is the length of the optional-data filler in line 2.
	FillerRun = 15
	// DefaultCountry is the issuing state used when none is configured.
	DefaultCountry = "VEN"
	// ExpiryYears is the validity period added to the birth date.
	ExpiryYears = 10
)

// ErrFormat is matched by every *FormatWarning.
var ErrFormat = errors.New("mrz: format warning")

// FormatWarning reports that RepairLine2 could not reuse the existing line
// and synthesized a fallback. The returned line is still usable.
type FormatWarning struct {
	Input  string
	Reason string
}

func (w *FormatWarning) Error() string {
	return fmt.Sprintf("mrz: %s: %q", w.Reason, w.Input)
}

// Is reports whether target is ErrFormat.
func (w *FormatWarning) Is(target error) bool { return target == ErrFormat }

// Encoder builds MRZ lines for one issuing country.
// The zero value uses DefaultCountry and ICAO check digits.
type Encoder struct {
	Country     string
	CheckDigits CheckDigits
}

func (e Encoder) country() string {
	if e.Country == "" {
		return DefaultCountry
	}
	return e.Country
}

func (e Encoder) digits() CheckDigits {
	if e.CheckDigits == nil {
		return ICAO{}
	}
	return e.CheckDigits
}

// Line1 returns "P<" + country + surname + "<<" + given, with each name
// sanitized and padded or truncated to NameWidth, forced to LineLength.
func (e Encoder) Line1(surname, given string) string {
	s := "P<" + e.country() + padField(Sanitize(surname), NameWidth) + "<<" + padField(Sanitize(given), NameWidth)
	return Fit(s)
}

// Line2 returns the data line for a document number, birth date and sex.
// Sex is "F" when the input is "F" or "f" and "M" otherwise. The expiry is
// birth + ExpiryYears on the same month and day.
func (e Encoder) Line2(doc string, birth time.Time, sex string) string {
	cd := e.digits()
	bd := YYMMDD(birth)
	exp := YYMMDD(AddYears(birth, ExpiryYears))
	filler := strings.Repeat(string(Filler), FillerRun)

	c1 := cd.Digit(doc)
	c2 := cd.Digit(exp)
	c3 := cd.Digit(doc + string(c1) + bd + exp + string(c2) + filler)

	var b strings.Builder
	b.WriteString(doc)
	b.WriteByte(c1)
	b.WriteString(e.country())
	b.WriteString(bd)
	b.WriteString(SexCode(sex))
	b.WriteString(exp)
	b.WriteByte(c2)
	b.WriteString(filler)
	b.WriteByte(c3)
	return Fit(b.String())
}

// RepairLine2 replaces the document number of an existing line 2.
//
// A line shorter than LineLength is replaced by a fallback shaped like a
// valid line and a *FormatWarning is returned alongside. A full line that
// already starts with doc is kept as is. Otherwise every field but the
// document number keeps its fixed position. An empty doc leaves the line
// unrepaired and is reported with a *FormatWarning. The result is always
// LineLength characters.
func (e Encoder) RepairLine2(existing, doc string) (string, error) {
	r := []rune(existing)
	if strings.TrimSpace(doc) == "" {
		return Fit(existing), &FormatWarning{Input: existing, Reason: "empty document number, line 2 left unrepaired"}
	}
	if len(r) >= LineLength && strings.HasPrefix(existing, doc) {
		return Fit(existing), nil
	}

	if len(r) < LineLength {
		fb := doc + "0" + e.country() + "900101M000101" + "0" + strings.Repeat(string(Filler), FillerRun) + "0"
		return Fit(fb), &FormatWarning{Input: existing, Reason: "line 2 too short, using fallback"}
	}

	s := doc +
		string(r[9]) +
		string(r[10:13]) +
		string(r[13:19]) +
		string(r[19]) +
		string(r[20:26]) +
		string(r[26]) +
		string(r[27:42]) +
		string(r[42])
	return Fit(s), nil
}

// Fit pads s with Filler or truncates it to exactly LineLength characters.
func Fit(s string) string {
	return padField(s, LineLength)
}

// padField pads or truncates s to n runes.
func padField(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return s + strings.Repeat(string(Filler), n-len(r))
}

// Sanitize upper-cases s, folds accented letters to their base letter and
// removes everything outside A-Z.
func Sanitize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToUpper(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, c := range folded {
		if c >= 'A' && c <= 'Z' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// SexCode maps a sex value to its MRZ letter.
func SexCode(sex string) string {
	if strings.EqualFold(strings.TrimSpace(sex), "F") {
		return "F"
	}
	return "M"
}

// YYMMDD formats t as two-digit year, month and day.
func YYMMDD(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", t.Year()%100, int(t.Month()), t.Day())
}

// AddYears returns t moved n years on the same month and day. A 29 February
// that does not exist in the target year becomes 28 February.
func AddYears(t time.Time, n int) time.Time {
	y := t.Year() + n
	d := t.Day()
	if t.Month() == time.February && d == 29 && !isLeap(y) {
		d = 28
	}
	return time.Date(y, t.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
