// Package record turns one identity record into the field values of a
// document.
package record

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/idstamp"
	"github.com/gogpu/idstamp/mrz"
)

// Field ids produced by Values.
const (
	FieldGivenNames       = "given_names"
	FieldSurnames         = "surnames"
	FieldBirthDate        = "birth_date"
	FieldIssueDate        = "issue_date"
	FieldExpiryDate       = "expiry_date"
	FieldIDNumber         = "id_number"
	FieldSex              = "sex"
	FieldNationality      = "nationality"
	FieldBirthPlace       = "birth_place"
	FieldDocumentNumber   = "document_number"
	FieldDocumentNumberV1 = "document_number_v1"
	FieldDocumentNumberV2 = "document_number_v2"
	FieldDocumentType     = "document_type"
	FieldIssuingCountry   = "issuing_country"
	FieldVerificationCode = "verification_code"
	FieldSignature        = "signature"
	FieldMRZLine1         = "mrz_line1"
	FieldMRZLine2         = "mrz_line2"
	FieldPhoto            = "photo"
)

// DateLayout is the input layout of record dates.
const DateLayout = "2006-01-02"

// Defaults applied by Values.
const (
	DefaultNationality  = "VENEZOLANA"
	DefaultDocumentType = "P"
)

// ErrDocumentNumber is returned for a record without a document number.
var ErrDocumentNumber = errors.New("record: missing document number")

// Record is one person's identity data.
type Record struct {
	GivenNames     string    `toml:"given_names"`
	Surnames       string    `toml:"surnames"`
	Birth          time.Time `toml:"-"`
	Issued         time.Time `toml:"-"`
	Sex            string    `toml:"sex"`
	Nationality    string    `toml:"nationality"`
	BirthPlace     string    `toml:"birth_place"`
	DocumentNumber string    `toml:"document_number"`
	IDNumber       string    `toml:"id_number"`
	Signature      string    `toml:"signature"`
	// MRZLine2 is a previously issued line 2. When set, it is repaired
	// with DocumentNumber instead of generating a new one.
	MRZLine2 string `toml:"mrz_line2"`
}

type file struct {
	Record
	BirthDate string `toml:"birth_date"`
	IssueDate string `toml:"issue_date"`
}

// Load decodes a record from a TOML file. Dates use DateLayout.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("record: read: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a record from TOML text.
func Parse(data string) (Record, error) {
	var f file
	if _, err := toml.Decode(data, &f); err != nil {
		return Record{}, fmt.Errorf("record: decode: %w", err)
	}
	r := f.Record
	var err error
	if r.Birth, err = parseDate("birth_date", f.BirthDate); err != nil {
		return Record{}, err
	}
	if r.Issued, err = parseDate("issue_date", f.IssueDate); err != nil {
		return Record{}, err
	}
	return r, nil
}

func parseDate(key, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("record: %s: %w", key, err)
	}
	return t, nil
}

var (
	monthsLocal = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
	monthsIntl  = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// FormatDate formats t as "DD/Mes/Mon/YYYY" with the Spanish and English
// month abbreviations, the value of a composite date field.
func FormatDate(t time.Time) string {
	m := int(t.Month()) - 1
	return fmt.Sprintf("%02d/%s/%s/%d", t.Day(), monthsLocal[m], monthsIntl[m], t.Year())
}

// VerificationCode formats t as "DD-MM-YY".
func VerificationCode(t time.Time) string {
	return fmt.Sprintf("%02d-%02d-%02d", t.Day(), int(t.Month()), t.Year()%100)
}

// Expiry returns the expiry of a document issued at t.
func Expiry(issued time.Time) time.Time {
	return mrz.AddYears(issued, mrz.ExpiryYears)
}

// Clean normalizes a printed name or place: Unicode NFC, surrounding and
// repeated white space removed, upper case.
func Clean(s string) string {
	if n, _, err := transform.String(norm.NFC, s); err == nil {
		s = n
	}
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// Values returns the field values of r. Dates that are zero produce no
// value. A previously issued MRZ line 2 that is too short is replaced by a
// fallback line; the *mrz.FormatWarning is returned with the values.
func Values(r Record, enc mrz.Encoder) (map[string]idstamp.Value, error) {
	doc := strings.TrimSpace(r.DocumentNumber)
	if doc == "" {
		return nil, ErrDocumentNumber
	}

	given, surnames := Clean(r.GivenNames), Clean(r.Surnames)
	nationality := Clean(r.Nationality)
	if nationality == "" {
		nationality = DefaultNationality
	}
	sex := mrz.SexCode(r.Sex)
	country := enc.Country
	if country == "" {
		country = mrz.DefaultCountry
	}

	v := map[string]idstamp.Value{
		FieldGivenNames:       idstamp.Text(given),
		FieldSurnames:         idstamp.Text(surnames),
		FieldSex:              idstamp.Text(sex),
		FieldNationality:      idstamp.Text(nationality),
		FieldBirthPlace:       idstamp.Text(Clean(r.BirthPlace)),
		FieldDocumentNumber:   idstamp.Text(doc),
		FieldDocumentNumberV1: idstamp.Text(doc),
		FieldDocumentNumberV2: idstamp.Text(doc),
		FieldDocumentType:     idstamp.Text(DefaultDocumentType),
		FieldIssuingCountry:   idstamp.Text(country),
		FieldIDNumber:         idstamp.Text(strings.TrimSpace(r.IDNumber)),
		FieldMRZLine1:         idstamp.Text(enc.Line1(surnames, given)),
	}
	if s := strings.TrimSpace(r.Signature); s != "" {
		v[FieldSignature] = idstamp.Text(s)
	}
	if !r.Birth.IsZero() {
		v[FieldBirthDate] = idstamp.Text(FormatDate(r.Birth))
		v[FieldVerificationCode] = idstamp.Text(VerificationCode(r.Birth))
	}
	if !r.Issued.IsZero() {
		v[FieldIssueDate] = idstamp.Text(FormatDate(r.Issued))
		v[FieldExpiryDate] = idstamp.Text(FormatDate(Expiry(r.Issued)))
	}

	var warn error
	switch {
	case r.MRZLine2 != "":
		var line string
		line, warn = enc.RepairLine2(r.MRZLine2, doc)
		v[FieldMRZLine2] = idstamp.Text(line)
	case !r.Birth.IsZero():
		v[FieldMRZLine2] = idstamp.Text(enc.Line2(doc, r.Birth, sex))
	}
	return v, warn
}
