package user

import (
	"errors"

	"gorm.io/gorm"

	"retaildash/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBranchNotFound = errors.New("branch not found")

	// ErrIdentityConflict means an email and a Google subject id resolve to
	// two different accounts. Fail closed instead of picking one.
	ErrIdentityConflict = errors.New("identity maps to conflicting accounts")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GetByID(id uint) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *Service) GetByEmail(email string) (*database.User, error) {
	var user database.User

	result := s.db.First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByEmailOrGoogleID looks up both keys. A Google-id match wins over an
// email match only when they name the same row; split identities are a
// conflict.
func (s *Service) GetByEmailOrGoogleID(email, googleID string) (*database.User, error) {
	var byGoogle, byEmail *database.User

	var g database.User
	err := s.db.First(&g, "google_id = ?", googleID).Error
	if err == nil {
		byGoogle = &g
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var e database.User
	err = s.db.First(&e, "email = ?", email).Error
	if err == nil {
		byEmail = &e
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if byGoogle != nil && byEmail != nil && byGoogle.ID != byEmail.ID {
		return nil, ErrIdentityConflict
	}
	if byGoogle != nil {
		return byGoogle, nil
	}
	if byEmail != nil {
		return byEmail, nil
	}
	return nil, ErrNotFound
}

// Create inserts a new user. The unique index on email arbitrates
// concurrent registrations; the loser sees ErrEmailTaken.
func (s *Service) Create(user *database.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// LinkGoogleID binds a Google subject id to an existing local account. The
// update is a single-column write, so replaying it with the same id is
// harmless.
func (s *Service) LinkGoogleID(user *database.User, googleID string, picture *string) error {
	updates := map[string]interface{}{"google_id": googleID}
	if picture != nil {
		updates["profile_picture"] = *picture
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrIdentityConflict
		}
		return err
	}

	user.GoogleID = &googleID
	if picture != nil {
		user.ProfilePicture = picture
	}
	return nil
}

func (s *Service) GetBranchByCode(code string) (*database.Branch, error) {
	var branch database.Branch

	result := s.db.First(&branch, "branch_code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, result.Error
	}
	return &branch, nil
}

func (s *Service) LogUpload(entry *database.UploadLog) error {
	return s.db.Create(entry).Error
}
