package activity

// UnknownKey is the contributor key used when a record carries neither a
// usable name nor an email.
const UnknownKey = "Unknown"

// Identity is the result of resolving a raw (name, email) pair. Key is the
// canonical contributor key; Email is the resolved email, empty when none
// could be determined.
type Identity struct {
	Key         string
	DisplayName string
	Email       string
}

// IdentityIndex maps display names and principal names to emails. It is
// built once per run from the user directory and read-only afterwards.
type IdentityIndex struct {
	byDisplayName map[string]string
	byPrincipal   map[string]string
}

// NewIdentityIndex builds the lookup index. Directory entries without an
// email contribute nothing.
func NewIdentityIndex(directory []UserDirectoryEntry) *IdentityIndex {
	idx := &IdentityIndex{
		byDisplayName: make(map[string]string),
		byPrincipal:   make(map[string]string),
	}

	for _, entry := range directory {
		if entry.Email == "" {
			continue
		}
		if entry.DisplayName != "" {
			idx.byDisplayName[entry.DisplayName] = entry.Email
		}
		if entry.PrincipalName != "" {
			idx.byPrincipal[entry.PrincipalName] = entry.Email
		}
	}

	return idx
}

// Resolve maps a raw (name, email) pair to a canonical identity. The email
// wins when present; otherwise the name is looked up in the directory index.
// A name that matches nothing keys the contributor on its own; with neither
// name nor email the sentinel UnknownKey is used.
//
// Name matching is exact and case-sensitive: "john doe" and "John Doe" do
// not merge unless the directory maps both to the same email.
func (idx *IdentityIndex) Resolve(name, email string) Identity {
	resolved := email
	if resolved == "" && name != "" {
		if e, ok := idx.byDisplayName[name]; ok {
			resolved = e
		} else if e, ok := idx.byPrincipal[name]; ok {
			resolved = e
		}
	}

	key := resolved
	if key == "" {
		key = name
	}
	if key == "" {
		key = UnknownKey
	}

	return Identity{Key: key, DisplayName: name, Email: resolved}
}
