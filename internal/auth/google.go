package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"retaildash/internal/config"
	"retaildash/internal/database"
	"retaildash/internal/platform/user"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is what Google reports about the signed-in account after the code
// exchange.
type Profile struct {
	GoogleID string
	Email    string
	Name     string
	Picture  *string
}

// IdentityStore is the persistence the resolver needs: lookup, create and
// one-directional local-to-Google linking.
type IdentityStore interface {
	GetByEmailOrGoogleID(email, googleID string) (*database.User, error)
	Create(user *database.User) error
	LinkGoogleID(user *database.User, googleID string, picture *string) error
}

// GoogleResolver reconciles a Google profile with a local account. One
// instance is constructed at startup and injected into the handler layer;
// there is no process-global provider registry.
type GoogleResolver struct {
	oauth *oauth2.Config
	store IdentityStore
}

func NewGoogleResolver(cfg *config.Config, store IdentityStore) *GoogleResolver {
	return &GoogleResolver{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		store: store,
	}
}

func (r *GoogleResolver) AuthCodeURL(state string) string {
	return r.oauth.AuthCodeURL(state)
}

// FetchProfile exchanges the authorization code and reads the userinfo
// endpoint.
func (r *GoogleResolver) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := r.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	resp, err := r.oauth.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("userinfo: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("userinfo: incomplete profile")
	}

	profile := &Profile{
		GoogleID: info.ID,
		Email:    strings.ToLower(info.Email),
		Name:     info.Name,
	}
	if info.Picture != "" {
		profile.Picture = &info.Picture
	}
	return profile, nil
}

// Resolve links the profile to a matching local account or creates a fresh
// one. Linking only ever attaches a Google id to a local record; nothing is
// retried, and any store failure aborts the whole callback.
func (r *GoogleResolver) Resolve(profile *Profile) (*database.User, error) {
	existing, err := r.store.GetByEmailOrGoogleID(profile.Email, profile.GoogleID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.GoogleID == nil {
			if err := r.store.LinkGoogleID(existing, profile.GoogleID, profile.Picture); err != nil {
				return nil, err
			}
			return existing, nil
		}
		if *existing.GoogleID != profile.GoogleID {
			// Matched by email, but the record is bound to another Google
			// account. Refuse rather than guess.
			return nil, user.ErrIdentityConflict
		}
		return existing, nil
	}

	created := &database.User{
		Email:          profile.Email,
		GoogleID:       &profile.GoogleID,
		FullName:       profile.Name,
		ProfilePicture: profile.Picture,
		Role:           database.RoleUser,
	}
	if err := r.store.Create(created); err != nil {
		return nil, err
	}
	return created, nil
}
