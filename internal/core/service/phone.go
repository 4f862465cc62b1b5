package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/vogueline/agency-api/internal/core/domain"
)

const defaultPhoneRegion = "US"

// normalizePhone returns raw in E.164 form. Numbers without a country prefix
// are read in the given region. An empty input stays empty.
func normalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", domain.NewValidationError("phone", "phone number is not valid")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
