package record

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/idstamp/mrz"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{date(1985, time.May, 14), "14/May/May/1985"},
		{date(1997, time.August, 4), "04/Ago/Aug/1997"},
		{date(2000, time.January, 1), "01/Ene/Jan/2000"},
		{date(2020, time.December, 31), "31/Dic/Dec/2020"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerificationCode(t *testing.T) {
	if got := VerificationCode(date(1997, time.April, 14)); got != "14-04-97" {
		t.Errorf("VerificationCode = %q, want %q", got, "14-04-97")
	}
	if got := VerificationCode(date(2005, time.November, 3)); got != "03-11-05" {
		t.Errorf("VerificationCode = %q, want %q", got, "03-11-05")
	}
}

func TestExpiry(t *testing.T) {
	if got := Expiry(date(2020, time.February, 29)); !got.Equal(date(2030, time.February, 28)) {
		t.Errorf("Expiry(leap day) = %v", got)
	}
	if got := Expiry(date(2020, time.March, 12)); !got.Equal(date(2030, time.March, 12)) {
		t.Errorf("Expiry = %v", got)
	}
}

func TestClean(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  maría   josé ", "MARÍA JOSÉ"},
		{"Maracaibo\tVEN", "MARACAIBO VEN"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValues(t *testing.T) {
	r := Record{
		GivenNames:     "María",
		Surnames:       "González",
		Birth:          date(1985, time.May, 14),
		Issued:         date(2020, time.March, 12),
		Sex:            "f",
		BirthPlace:     "maracaibo ven",
		DocumentNumber: "123456789",
		IDNumber:       "12345678",
		Signature:      "María González",
	}
	v, err := Values(r, mrz.Encoder{})
	if err != nil {
		t.Fatalf("Values: %v", err)
	}

	got := make(map[string]string, len(v))
	for k, val := range v {
		got[k] = val.String()
	}
	want := map[string]string{
		FieldGivenNames:       "MARÍA",
		FieldSurnames:         "GONZÁLEZ",
		FieldBirthDate:        "14/May/May/1985",
		FieldIssueDate:        "12/Mar/Mar/2020",
		FieldExpiryDate:       "12/Mar/Mar/2030",
		FieldIDNumber:         "12345678",
		FieldSex:              "F",
		FieldNationality:      "VENEZOLANA",
		FieldBirthPlace:       "MARACAIBO VEN",
		FieldDocumentNumber:   "123456789",
		FieldDocumentNumberV1: "123456789",
		FieldDocumentNumberV2: "123456789",
		FieldDocumentType:     "P",
		FieldIssuingCountry:   "VEN",
		FieldVerificationCode: "14-05-85",
		FieldSignature:        "María González",
		FieldMRZLine1:         "P<VENGONZALEZ" + strings.Repeat("<", 14) + "MARIA" + strings.Repeat("<", 12),
		FieldMRZLine2:         "1234567897VEN850514F9505140" + strings.Repeat("<", 15) + "5<",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesRepairsLine2(t *testing.T) {
	r := Record{DocumentNumber: "999999999", MRZLine2: "short"}
	v, err := Values(r, mrz.Encoder{})
	if !errors.Is(err, mrz.ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
	line := v[FieldMRZLine2].String()
	if len(line) != mrz.LineLength || !strings.HasPrefix(line, "999999999") {
		t.Errorf("line 2 = %q", line)
	}
	if _, ok := v[FieldBirthDate]; ok {
		t.Error("zero birth date produced a value")
	}
}

func TestValuesNeedsDocumentNumber(t *testing.T) {
	if _, err := Values(Record{GivenNames: "A"}, mrz.Encoder{}); !errors.Is(err, ErrDocumentNumber) {
		t.Errorf("err = %v, want ErrDocumentNumber", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "person.toml")
	data := `
given_names = "Marcos"
surnames = "Vargas Garcia"
birth_date = "1997-08-14"
issue_date = "2021-02-03"
sex = "M"
document_number = "108641398"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !r.Birth.Equal(date(1997, time.August, 14)) || !r.Issued.Equal(date(2021, time.February, 3)) {
		t.Errorf("dates = %v, %v", r.Birth, r.Issued)
	}
	if r.Surnames != "Vargas Garcia" || r.DocumentNumber != "108641398" {
		t.Errorf("record = %+v", r)
	}

	if _, err := Parse(`birth_date = "14/08/1997"`); err == nil {
		t.Error("Parse accepted a malformed date")
	}
}
