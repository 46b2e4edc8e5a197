package twitton

const (
	MediaTypeActivityJSON = "application/activity+json"
	MediaTypeJSON         = "application/json"
	MediaTypeHTML         = "text/html"
	MediaTypePNG          = "image/png"
)

const (
	RelProfilePage = "http://webfinger.net/rel/profile-page"
	RelSelf        = "self"
	RelSubscribe   = "http://ostatus.org/schema/1.0/subscribe"
)

const (
	ContextActivityStreams = "https://www.w3.org/ns/activitystreams"
	ContextSecurity        = "https://w3id.org/security/v1"

	ActorTypePerson = "Person"
	ObjectTypeImage = "Image"
)

// WebfingerDocument is the JRD returned from /.well-known/webfinger.
type WebfingerDocument struct {
	Subject string          `json:"subject"`
	Aliases []string        `json:"aliases"`
	Links   []WebfingerLink `json:"links"`
}

type WebfingerLink struct {
	Rel      string  `json:"rel"`
	Type     *string `json:"type,omitempty"`
	Href     *string `json:"href,omitempty"`
	Template *string `json:"template,omitempty"`
}

// Link returns the first link with the given rel.
func (d WebfingerDocument) Link(rel string) (WebfingerLink, bool) {
	for _, l := range d.Links {
		if l.Rel == rel {
			return l, true
		}
	}
	return WebfingerLink{}, false
}

type Actor struct {
	Context           []string        `json:"@context"`
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	PreferredUsername string          `json:"preferredUsername"`
	Inbox             string          `json:"inbox"`
	PublicKey         PublicKey       `json:"publicKey"`
	Icon              *Image          `json:"icon,omitempty"`
	Endpoints         *ActorEndpoints `json:"endpoints,omitempty"`
}

type PublicKey struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	PublicKeyPem string `json:"publicKeyPem"`
}

type Image struct {
	Type      string `json:"type"`
	MediaType string `json:"mediaType"`
	URL       string `json:"url"`
}

type ActorEndpoints struct {
	SharedInbox string `json:"sharedInbox"`
}
