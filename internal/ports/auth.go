package ports

import "net/http"

// Outcome is the result of an authorization check.
type Outcome int

const (
	// Deny means the request lacks valid credentials.
	Deny Outcome = iota
	// Allow means the request may proceed.
	Allow
	// Misconfigured means no decision can be made because the expected
	// credential is not configured. Callers must fail closed.
	Misconfigured
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Misconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

// Decision carries an Outcome and a short reason suitable for logging.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Authorizer decides whether a request may perform a mutating operation.
// Implemented by the access guard; consulted by the router before handlers run.
type Authorizer interface {
	Authorize(r *http.Request) Decision
}
