package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDirectory() []UserDirectoryEntry {
	return []UserDirectoryEntry{
		{DisplayName: "Alice Adams", PrincipalName: "alice@example.com", Email: "alice@example.com"},
		{DisplayName: "Bob Brown", PrincipalName: "bob@example.com", Email: "bob@example.com"},
		{DisplayName: "Ghost User", PrincipalName: "ghost@example.com", Email: ""}, // no email, no index entries
	}
}

func TestResolve(t *testing.T) {
	idx := NewIdentityIndex(testDirectory())

	tests := []struct {
		name      string
		rawName   string
		rawEmail  string
		wantKey   string
		wantEmail string
	}{
		{
			name:      "email wins when present",
			rawName:   "Someone Else",
			rawEmail:  "alice@example.com",
			wantKey:   "alice@example.com",
			wantEmail: "alice@example.com",
		},
		{
			name:      "display name resolves through directory",
			rawName:   "Alice Adams",
			rawEmail:  "",
			wantKey:   "alice@example.com",
			wantEmail: "alice@example.com",
		},
		{
			name:      "principal name resolves through directory",
			rawName:   "bob@example.com",
			rawEmail:  "",
			wantKey:   "bob@example.com",
			wantEmail: "bob@example.com",
		},
		{
			name:      "unresolvable name keys on itself",
			rawName:   "Stranger",
			rawEmail:  "",
			wantKey:   "Stranger",
			wantEmail: "",
		},
		{
			name:      "directory entry without email contributes nothing",
			rawName:   "Ghost User",
			rawEmail:  "",
			wantKey:   "Ghost User",
			wantEmail: "",
		},
		{
			name:      "no name and no email falls back to sentinel",
			rawName:   "",
			rawEmail:  "",
			wantKey:   UnknownKey,
			wantEmail: "",
		},
		{
			name:      "name matching is case-sensitive",
			rawName:   "alice adams",
			rawEmail:  "",
			wantKey:   "alice adams",
			wantEmail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := idx.Resolve(tt.rawName, tt.rawEmail)
			assert.Equal(t, tt.wantKey, id.Key)
			assert.Equal(t, tt.wantEmail, id.Email)
			assert.Equal(t, tt.rawName, id.DisplayName)
		})
	}
}

func TestResolveSameEmailMergesDifferentNames(t *testing.T) {
	idx := NewIdentityIndex(testDirectory())

	a := idx.Resolve("Alice Adams", "alice@example.com")
	b := idx.Resolve("A. Adams", "alice@example.com")
	assert.Equal(t, a.Key, b.Key)
}
