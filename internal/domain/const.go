package domain

// InboxKind distinguishes the shared inbox from per-user inboxes.
type InboxKind int

const (
	InboxKindShared InboxKind = iota
	InboxKindDirect
)

func (k InboxKind) String() string {
	switch k {
	case InboxKindShared:
		return "shared"
	default:
		return "direct"
	}
}

const (
	IndexBody       = "twitton :)"
	ProfilePageBody = "twitton // %s"
)
