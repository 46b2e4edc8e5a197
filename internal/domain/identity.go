package domain

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/totegamma/twitton"
)

// Identity is the read-only description of a local actor.
// It is built once at startup and never mutated.
type Identity struct {
	WebDomain      string
	LocalDomain    string
	Username       string
	Handle         string // username@local_domain
	ProfileURL     string
	SubscribeURL   string
	SharedInboxURL string
	InboxURL       string
	PublicKeyPEM   string
	IconURL        *string
	Fingerprint    string // hash over every configured value
}

func NewIdentity(webDomain, localDomain, username, publicKeyPEM string, iconURL *string) Identity {
	icon := ""
	if iconURL != nil {
		icon = "icon:" + *iconURL
	}
	sum := xxh3.HashString(strings.Join([]string{webDomain, localDomain, username, publicKeyPEM, icon}, "\x00"))

	return Identity{
		WebDomain:      webDomain,
		LocalDomain:    localDomain,
		Username:       username,
		Handle:         twitton.ComposeHandle(username, localDomain),
		ProfileURL:     fmt.Sprintf("https://%s/user/%s", webDomain, username),
		SubscribeURL:   fmt.Sprintf("https://%s/authorize_interaction?uri={uri}", webDomain),
		SharedInboxURL: fmt.Sprintf("https://%s/inbox", webDomain),
		InboxURL:       fmt.Sprintf("https://%s/user/%s/inbox", webDomain, username),
		PublicKeyPEM:   publicKeyPEM,
		IconURL:        iconURL,
		Fingerprint:    fmt.Sprintf("%016x", sum),
	}
}

// Resource is the canonical WebFinger resource, acct:username@local_domain.
func (i Identity) Resource() string {
	return twitton.ComposeAcct(i.Username, i.LocalDomain)
}

func (i Identity) KeyID() string {
	return i.ProfileURL + "#main-key"
}

// CacheKey scopes a document cache key to this identity's configuration.
func (i Identity) CacheKey(kind, name string) string {
	return kind + ":" + i.Fingerprint + ":" + name
}
