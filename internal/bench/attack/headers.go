package attack

import "fmt"

// IntrospectionOperation is the operation name sent without an Authorization header.
const IntrospectionOperation = "Introspection"

// BuildHeaders returns the header lines sent with every request of a run: a bearer
// token unless operation is the introspection query, followed by the caller's
// headers. Caller headers never replace the bearer header; both are sent.
func BuildHeaders(token, operation string, headers []string) []string {
	all := make([]string, 0, len(headers)+1)
	if operation != IntrospectionOperation {
		all = append(all, fmt.Sprintf("Authorization: Bearer %s", token))
	}
	return append(all, headers...)
}
