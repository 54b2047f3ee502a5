package commands

import (
	"context"
	"log/slog"

	"flea-market/internal/domain/user"
	reqdto "flea-market/internal/handler/dto/request"
	"flea-market/internal/infra"
	"flea-market/internal/pkg/errs"
	"flea-market/internal/pkg/jwt"
	"flea-market/internal/pkg/password"
	"flea-market/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailTaken           = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest, avatar *UploadedFile) (uuid.UUID, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	users      UserRepository
	readStore  queries.UserReadStore
	blobs      BlobStore
	jwtService *jwt.Service
}

func NewAuthCommands(
	users UserRepository,
	readStore queries.UserReadStore,
	blobs BlobStore,
	jwtService *jwt.Service,
) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		readStore:  readStore,
		blobs:      blobs,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest, avatar *UploadedFile) (uuid.UUID, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	var avatarRef *string
	if avatar != nil && len(avatar.Content) > 0 {
		stored, saveErr := a.blobs.Save(avatar.Content, avatar.Name)
		if saveErr != nil {
			return uuid.Nil, errs.Wrap(saveErr, "failed to store avatar")
		}
		avatarRef = &stored
	}

	newUser := user.NewUser(credentials.Email(), hash, req.FirstName, req.LastName, avatarRef)
	if err := a.users.Create(ctx, newUser); err != nil {
		if avatarRef != nil {
			if delErr := a.blobs.Delete(*avatarRef); delErr != nil {
				slog.Warn("failed to remove orphaned avatar", "ref", *avatarRef, "error", delErr.Error())
			}
		}
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrEmailTaken)
		}
		return uuid.Nil, err
	}

	return newUser.ID(), nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	accessToken, err := a.jwtService.GenerateToken(view.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      view.ID,
		AccessToken: accessToken,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.UserView, error) {
	view, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}

	if view == nil {
		return nil, ErrUserNotFound
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return view, nil
}
