package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed when a number carries no country code.
const DefaultRegion = "US"

// Info contains the result of parsing a homeowner phone number.
type Info struct {
	IsValid        bool   `json:"isValid"`
	E164Format     string `json:"e164Format"`
	NationalFormat string `json:"nationalFormat"`
	Region         string `json:"region"`
}

// Parse validates a phone number and returns its canonical formats.
func Parse(raw, region string) (*Info, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	return &Info{
		IsValid:        phonenumbers.IsValidNumber(parsed),
		E164Format:     phonenumbers.Format(parsed, phonenumbers.E164),
		NationalFormat: phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		Region:         phonenumbers.GetRegionCodeForNumber(parsed),
	}, nil
}

// Normalize returns the national format of a valid number, for example
// (555) 123-4567. Blank, unparseable or invalid input is returned verbatim:
// homeowner contact data is best-effort and a strange value is still worth
// keeping on the card.
func Normalize(raw string) string {
	info, err := Parse(raw, DefaultRegion)
	if err != nil || !info.IsValid {
		return raw
	}
	return info.NationalFormat
}
