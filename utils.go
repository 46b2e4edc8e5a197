package twitton

import (
	"fmt"
	"strings"
)

const acctScheme = "acct:"

// ParseAcct splits "acct:user@domain" (or a bare "user@domain") into its parts.
func ParseAcct(resource string) (string, string, error) {
	handle := strings.TrimPrefix(resource, acctScheme)
	handle = strings.TrimPrefix(handle, "@")

	user, domain, ok := strings.Cut(handle, "@")
	if !ok {
		return "", "", fmt.Errorf("invalid acct %q: missing domain", resource)
	}
	if user == "" || domain == "" {
		return "", "", fmt.Errorf("invalid acct %q: empty user or domain", resource)
	}
	if strings.ContainsAny(domain, "@/ ") || strings.ContainsAny(user, "/ ") {
		return "", "", fmt.Errorf("invalid acct %q", resource)
	}

	return user, domain, nil
}

func ComposeAcct(user, domain string) string {
	return acctScheme + user + "@" + domain
}

// ComposeHandle returns "user@domain".
func ComposeHandle(user, domain string) string {
	return user + "@" + domain
}
