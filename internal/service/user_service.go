package service

import (
	"context"
	"strings"
	"time"

	"artspace/internal/auth"
	"artspace/internal/models"
	"artspace/internal/repository"
	"artspace/internal/storage"
	"artspace/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxFullNameLen = 100
	maxLocationLen = 100
	maxBioLen      = 500
)

type UserService struct {
	userRepo    repository.UserRepository
	artworkRepo repository.ArtworkRepository
	videoRepo   repository.VideoRepository
	tokens      *auth.TokenService
	uploads     *uploader
	now         func() time.Time
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
	Bio      string
	Location string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// UpdateProfileInput carries a partial profile update. Nil fields keep
// their current value.
type UpdateProfileInput struct {
	UserID   uint
	TargetID uint
	Username *string
	FullName *string
	Bio      *string
	Location *string
	Avatar   *Upload
}

// ArtistDetail is a public profile with the artist's live content.
type ArtistDetail struct {
	User     *models.User
	Artworks []*models.Artwork
	Videos   []*models.Video
}

func NewUserService(
	userRepo repository.UserRepository,
	artworkRepo repository.ArtworkRepository,
	videoRepo repository.VideoRepository,
	tokens *auth.TokenService,
	store storage.Store,
	maxUploadBytes int64,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		artworkRepo: artworkRepo,
		videoRepo:   videoRepo,
		tokens:      tokens,
		uploads:     newUploader(store, maxUploadBytes),
		now:         time.Now,
	}
}

// WithClock replaces the time source used for updated_at and deleted_at.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)

	if in.Email == "" || in.Username == "" || in.Password == "" || in.FullName == "" {
		return nil, models.NewValidationError("Email, username, password, and nama_lengkap are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validateProfileText(in.FullName, in.Bio, in.Location); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, in.Email, in.Username, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("User already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Username: in.Username,
		Password: string(hashed),
		FullName: in.FullName,
		Bio:      in.Bio,
		Location: in.Location,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateProfile lets a user edit their own profile only.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}
	if target.ID != in.UserID {
		return nil, models.NewForbiddenError("Not allowed to edit another user")
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if username != target.Username {
			taken, err := s.userRepo.ExistsByEmailOrUsername(ctx, "", username, target.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, models.NewConflictError("Username already taken")
			}
		}
		target.Username = username
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) != "" {
		target.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Bio != nil {
		target.Bio = *in.Bio
	}
	if in.Location != nil {
		target.Location = *in.Location
	}
	if err := validateProfileText(target.FullName, target.Bio, target.Location); err != nil {
		return nil, err
	}

	avatar, err := s.uploads.save(ctx, storage.CategoryProfilePicture, in.Avatar, false)
	if err != nil {
		return nil, err
	}
	if avatar != "" {
		target.AvatarPath = &avatar
	}

	now := s.now()
	target.UpdatedAt = &now
	if err := s.userRepo.UpdateProfile(ctx, target); err != nil {
		s.uploads.discard(ctx, avatar)
		return nil, err
	}
	return target, nil
}

// DeleteAccount soft deletes the caller. Outstanding tokens stop verifying
// immediately.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.SoftDelete(ctx, userID, s.now())
}

func (s *UserService) GetArtistDetail(ctx context.Context, id uint) (*ArtistDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	artworks, err := s.artworkRepo.List(ctx, repository.ListFilter{OwnerID: user.ID})
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.List(ctx, repository.ListFilter{OwnerID: user.ID})
	if err != nil {
		return nil, err
	}
	return &ArtistDetail{User: user, Artworks: artworks, Videos: videos}, nil
}

func validateProfileText(fullName, bio, location string) error {
	if err := validation.ValidateMaxLength("nama_lengkap", fullName, maxFullNameLen); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateMaxLength("bio", bio, maxBioLen); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateMaxLength("lokasi", location, maxLocationLen); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}
