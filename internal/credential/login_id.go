package credential

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var loginIDPattern = regexp.MustCompile(`^[A-Z]{6}[0-9]{8}$`)

const MaxSerial = 9999

var (
	ErrInvalidLoginID      = errors.New("login id must be 6 letters followed by 8 digits")
	ErrCompanyNameTooShort = errors.New("company name needs at least two letters")
	ErrPersonNameTooShort  = errors.New("first and last name need at least two letters each")
	ErrYearOutOfRange      = errors.New("joining year must fit in four digits")
	ErrSerialOutOfRange    = errors.New("serial must fit in four digits")
)

// LoginID is the parsed form of a canonical login identifier:
// company(2) first name(2) last name(2) joining year(4) serial(4).
type LoginID struct {
	CompanyCode   string
	FirstNameCode string
	LastNameCode  string
	JoiningYear   int
	Serial        int
}

func (l LoginID) String() string {
	return fmt.Sprintf("%s%s%s%04d%04d", l.CompanyCode, l.FirstNameCode, l.LastNameCode, l.JoiningYear, l.Serial)
}

// GenerateLoginID builds a login identifier. Name segments with fewer than two
// letters yield a shorter id rather than an error.
func GenerateLoginID(companyName, firstName, lastName string, joiningYear, serial int) string {
	return code2(companyName) + code2(firstName) + code2(lastName) +
		fmt.Sprintf("%04d%04d", joiningYear, serial)
}

// CheckLoginIDParts reports the first input that would keep GenerateLoginID
// from producing a canonical id.
func CheckLoginIDParts(companyName, firstName, lastName string, joiningYear, serial int) error {
	switch {
	case len(code2(companyName)) < 2:
		return ErrCompanyNameTooShort
	case len(code2(firstName)) < 2, len(code2(lastName)) < 2:
		return ErrPersonNameTooShort
	case joiningYear < 0 || joiningYear > 9999:
		return ErrYearOutOfRange
	case serial < 0 || serial > MaxSerial:
		return ErrSerialOutOfRange
	}
	return nil
}

func IsValidLoginID(s string) bool {
	return loginIDPattern.MatchString(s)
}

func ParseLoginID(s string) (LoginID, error) {
	if !IsValidLoginID(s) {
		return LoginID{}, ErrInvalidLoginID
	}

	year, _ := strconv.Atoi(s[6:10])
	serial, _ := strconv.Atoi(s[10:14])

	return LoginID{
		CompanyCode:   s[0:2],
		FirstNameCode: s[2:4],
		LastNameCode:  s[4:6],
		JoiningYear:   year,
		Serial:        serial,
	}, nil
}

func code2(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}
