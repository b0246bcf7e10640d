package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retaildash/internal/config"
	"retaildash/internal/database"
	"retaildash/internal/platform/user"
)

// fakeStore mirrors the lookup semantics of the real user service, in
// memory.
type fakeStore struct {
	users     []*database.User
	nextID    uint
	linkCalls int
}

func (f *fakeStore) GetByEmailOrGoogleID(email, googleID string) (*database.User, error) {
	var byGoogle, byEmail *database.User
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			byGoogle = u
		}
		if u.Email == email {
			byEmail = u
		}
	}
	if byGoogle != nil && byEmail != nil && byGoogle.ID != byEmail.ID {
		return nil, user.ErrIdentityConflict
	}
	if byGoogle != nil {
		return byGoogle, nil
	}
	if byEmail != nil {
		return byEmail, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeStore) Create(u *database.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, u)
	return nil
}

func (f *fakeStore) LinkGoogleID(u *database.User, googleID string, picture *string) error {
	f.linkCalls++
	gid := googleID
	u.GoogleID = &gid
	if picture != nil {
		u.ProfilePicture = picture
	}
	return nil
}

func newTestResolver(store IdentityStore) *GoogleResolver {
	cfg := &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleCallbackURL:  "http://localhost:5000/api/auth/google/callback",
	}
	return NewGoogleResolver(cfg, store)
}

func TestResolveCreatesNewUser(t *testing.T) {
	store := &fakeStore{}
	resolver := newTestResolver(store)

	picture := "https://lh3.example.com/photo.jpg"
	resolved, err := resolver.Resolve(&Profile{
		GoogleID: "g-123",
		Email:    "new@example.com",
		Name:     "New Person",
		Picture:  &picture,
	})
	require.NoError(t, err)

	require.Len(t, store.users, 1)
	assert.Equal(t, "new@example.com", resolved.Email)
	assert.Equal(t, "New Person", resolved.FullName)
	assert.Equal(t, database.RoleUser, resolved.Role)
	assert.Empty(t, resolved.PasswordHash)
	assert.Nil(t, resolved.BranchID)
	require.NotNil(t, resolved.GoogleID)
	assert.Equal(t, "g-123", *resolved.GoogleID)
}

func TestResolveLinksExistingLocalAccount(t *testing.T) {
	local := &database.User{
		ID:           1,
		Email:        "local@example.com",
		PasswordHash: "$2a$10$existingdigest",
		FullName:     "Local Person",
		Role:         database.RoleUser,
	}
	store := &fakeStore{users: []*database.User{local}, nextID: 1}
	resolver := newTestResolver(store)

	profile := &Profile{GoogleID: "g-456", Email: "local@example.com", Name: "Local Person"}

	resolved, err := resolver.Resolve(profile)
	require.NoError(t, err)

	assert.Equal(t, uint(1), resolved.ID)
	require.NotNil(t, resolved.GoogleID)
	assert.Equal(t, "g-456", *resolved.GoogleID)
	assert.Equal(t, "$2a$10$existingdigest", resolved.PasswordHash)
	assert.Equal(t, 1, store.linkCalls)

	// Replaying the callback is idempotent: no second link, no new user.
	again, err := resolver.Resolve(profile)
	require.NoError(t, err)
	assert.Equal(t, uint(1), again.ID)
	assert.Equal(t, 1, store.linkCalls)
	assert.Len(t, store.users, 1)
}

func TestResolveEmailBoundToOtherGoogleAccount(t *testing.T) {
	otherID := "g-other"
	store := &fakeStore{users: []*database.User{{
		ID:       1,
		Email:    "taken@example.com",
		GoogleID: &otherID,
		Role:     database.RoleUser,
	}}, nextID: 1}
	resolver := newTestResolver(store)

	_, err := resolver.Resolve(&Profile{GoogleID: "g-new", Email: "taken@example.com", Name: "X"})
	assert.ErrorIs(t, err, user.ErrIdentityConflict)
	assert.Zero(t, store.linkCalls)
}

func TestResolveSplitIdentityFailsClosed(t *testing.T) {
	gid := "g-123"
	store := &fakeStore{users: []*database.User{
		{ID: 1, Email: "one@example.com", GoogleID: &gid, Role: database.RoleUser},
		{ID: 2, Email: "two@example.com", PasswordHash: "x", Role: database.RoleUser},
	}, nextID: 2}
	resolver := newTestResolver(store)

	// Google id belongs to account 1, the email to account 2.
	_, err := resolver.Resolve(&Profile{GoogleID: "g-123", Email: "two@example.com", Name: "X"})
	assert.ErrorIs(t, err, user.ErrIdentityConflict)
	assert.Len(t, store.users, 2)
	assert.Zero(t, store.linkCalls)
}

func TestAuthCodeURLCarriesState(t *testing.T) {
	resolver := newTestResolver(&fakeStore{})

	url := resolver.AuthCodeURL("the-state")
	assert.Contains(t, url, "state=the-state")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "accounts.google.com")
}
