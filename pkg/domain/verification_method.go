package domain

import dErrors "guardian/pkg/domain-errors"

// VerificationMethod identifies how a parent proves they are the one granting
// consent. COPPA requires a "reasonable" verification method; which ones a
// deployment accepts is configuration, not code.
type VerificationMethod string

const (
	// MethodKBA verifies via knowledge-based authentication: a timed quiz of
	// adult-knowledge questions a child is unlikely to answer.
	MethodKBA VerificationMethod = "KBA"
	// MethodEmail verifies via a confirmation link sent to the parent's email.
	MethodEmail VerificationMethod = "EMAIL"
	// MethodPayment verifies via a nominal charge to a parent's payment card.
	// Only the gateway's verified boolean is consumed here.
	MethodPayment VerificationMethod = "PAYMENT"
)

var validMethods = map[VerificationMethod]bool{
	MethodKBA:     true,
	MethodEmail:   true,
	MethodPayment: true,
}

// ParseVerificationMethod constructs a VerificationMethod from external input.
func ParseVerificationMethod(s string) (VerificationMethod, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "verification method cannot be empty")
	}
	m := VerificationMethod(s)
	if !validMethods[m] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported verification method: "+s)
	}
	return m, nil
}

func (m VerificationMethod) IsValid() bool { return validMethods[m] }
func (m VerificationMethod) String() string { return string(m) }
