package validator

import (
	"log"
	"regexp"
	"strings"

	"disccount_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	TagStrictEmail = "strict_email"
	TagStoreChain  = "store_chain"

	maxEmailLength     = 254
	maxEmailLocalPart  = 64
	emailDomainPattern = `^[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`
)

var emailDomainRegexp = regexp.MustCompile(emailDomainPattern)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister(TagStrictEmail, validateStrictEmail)
	mustRegister(TagStoreChain, validateStoreChain)
}

func validateStrictEmail(fl validator.FieldLevel) bool {
	return IsStrictEmail(fl.Field().String())
}

// IsStrictEmail is stricter than the stock "email" tag: one '@', a 1..64
// character local part without leading, trailing or doubled dots, and a
// dotted domain ending in an alphabetic TLD. Empty values fail.
func IsStrictEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}

	local, domain, _ := strings.Cut(email, "@")
	if len(local) == 0 || len(local) > maxEmailLocalPart {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	if strings.Contains(domain, "..") {
		return false
	}
	return emailDomainRegexp.MatchString(domain)
}

func validateStoreChain(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	return models.StoreChain(value).IsValid()
}
