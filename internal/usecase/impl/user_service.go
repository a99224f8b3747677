// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"taskman/config"
	"taskman/internal/domain/entity"
	domainerrors "taskman/internal/domain/errors"
	"taskman/internal/domain/repository"
	"taskman/internal/domain/service"
	"taskman/internal/infra/mail"
	"taskman/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// userService implements the UserUsecase interface.
type userService struct {
	userRepo  repository.UserRepository
	taskRepo  repository.TaskRepository
	hasher    service.PasswordHasher
	tokenSvc  service.TokenService
	mailer    service.Mailer
	processor service.ImageProcessor
	avatar    config.AvatarConfig
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	TaskRepo  repository.TaskRepository
	Hasher    service.PasswordHasher
	TokenSvc  service.TokenService
	Mailer    service.Mailer
	Processor service.ImageProcessor
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:  params.UserRepo,
		taskRepo:  params.TaskRepo,
		hasher:    params.Hasher,
		tokenSvc:  params.TokenSvc,
		mailer:    params.Mailer,
		processor: params.Processor,
		avatar:    params.Config.Avatar,
		logger:    params.Logger,
	}
}

// normalizeUser trims and validates the mutable account fields. This is the
// explicit counterpart of the original schema's pre-save validation.
func normalizeUser(user *entity.User) error {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return domainerrors.ErrNameRequired
	}
	if user.Age < 0 {
		return domainerrors.ErrNegativeAge
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := validate.Var(user.Email, "required,email"); err != nil {
		return domainerrors.ErrInvalidEmail
	}

	return nil
}

// Register creates the account, sends the welcome email and issues the first token.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	user := &entity.User{
		Name:  input.Name,
		Age:   input.Age,
		Email: input.Email,
	}
	if err := normalizeUser(user); err != nil {
		return nil, err
	}
	if err := srv.hasher.ValidatePolicy(strings.TrimSpace(input.Password)); err != nil {
		return nil, err
	}

	hashed, err := srv.hasher.Hash(strings.TrimSpace(input.Password))
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	user.Password = hashed

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrEmailTaken
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	// Best-effort: the account is already saved, so a failed welcome email
	// must not fail the registration.
	if err := srv.mailer.Send(ctx, user.Email, mail.WelcomeSubject, mail.WelcomeBody(user.Name)); err != nil {
		srv.logger.Warn("Failed to send welcome email",
			slog.String("email", user.Email), slog.Any("error", err))
	}

	token, err := srv.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{User: user.Public(), Token: token}, nil
}

// Login verifies credentials and issues a new token.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnableToLogin
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		return nil, domainerrors.ErrUnableToLogin
	}

	token, err := srv.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{User: user.Public(), Token: token}, nil
}

// issueToken signs a new token, appends it to the user's live-token list and
// persists the user.
func (srv *userService) issueToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := srv.tokenSvc.Issue(user.ID.Hex())
	if err != nil {
		return "", errors.Wrap(err, "failed to issue token")
	}

	user.Tokens = append(user.Tokens, token)
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to persist token")
	}

	return token, nil
}

// Logout invalidates exactly the token used for the current request.
func (srv *userService) Logout(ctx context.Context, user *entity.User, token string) error {
	user.RemoveToken(token)

	return errors.Wrap(srv.userRepo.Update(ctx, user), "failed to persist logout")
}

// LogoutAll invalidates every live token of the user.
func (srv *userService) LogoutAll(ctx context.Context, user *entity.User) error {
	user.Tokens = []string{}

	return errors.Wrap(srv.userRepo.Update(ctx, user), "failed to persist logout")
}

// List returns the public view of every account.
func (srv *userService) List(ctx context.Context) ([]entity.PublicView, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]entity.PublicView, 0, len(users))
	for _, user := range users {
		views = append(views, user.Public())
	}

	return views, nil
}

// Update applies a whitelisted partial update, re-running validation and
// password hashing the way the original pre-save hooks did.
func (srv *userService) Update(ctx context.Context, user *entity.User, input *usecase.UpdateUserInput) (entity.PublicView, error) {
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if err := normalizeUser(user); err != nil {
		return entity.PublicView{}, err
	}

	if input.Password != nil {
		password := strings.TrimSpace(*input.Password)
		if err := srv.hasher.ValidatePolicy(password); err != nil {
			return entity.PublicView{}, err
		}
		hashed, err := srv.hasher.Hash(password)
		if err != nil {
			return entity.PublicView{}, errors.Wrap(err, "failed to hash password")
		}
		user.Password = hashed
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return entity.PublicView{}, domainerrors.ErrEmailTaken
		}

		return entity.PublicView{}, errors.Wrap(err, "failed to update user")
	}

	return user.Public(), nil
}

// Delete removes the account. The task cascade runs first; the two writes
// are not transactional, so a crash in between can orphan nothing worse
// than already-unowned tasks.
func (srv *userService) Delete(ctx context.Context, user *entity.User) error {
	if err := srv.taskRepo.DeleteByOwner(ctx, user.ID); err != nil {
		return errors.Wrap(err, "failed to cascade task deletion")
	}
	if err := srv.userRepo.Delete(ctx, user.ID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	if err := srv.mailer.Send(ctx, user.Email, mail.FarewellSubject, mail.FarewellBody(user.Name)); err != nil {
		srv.logger.Warn("Failed to send farewell email",
			slog.String("email", user.Email), slog.Any("error", err))
	}

	return nil
}

// SetAvatar normalizes the uploaded image and stores it on the user.
func (srv *userService) SetAvatar(ctx context.Context, user *entity.User, data []byte) error {
	processed, err := srv.processor.Process(data, srv.avatar.Width, srv.avatar.Height)
	if err != nil {
		srv.logger.Debug("Avatar processing failed", slog.Any("error", err))

		return domainerrors.ErrImageProcessing
	}

	user.Avatar = processed

	return errors.Wrap(srv.userRepo.Update(ctx, user), "failed to store avatar")
}

// RemoveAvatar clears the stored avatar; fails if none is set.
func (srv *userService) RemoveAvatar(ctx context.Context, user *entity.User) error {
	if len(user.Avatar) == 0 {
		return domainerrors.ErrAvatarNotSet
	}

	user.Avatar = nil

	return errors.Wrap(srv.userRepo.Update(ctx, user), "failed to clear avatar")
}

// GetAvatar returns the stored PNG bytes for any user id.
func (srv *userService) GetAvatar(ctx context.Context, id string) ([]byte, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domainerrors.ErrAvatarNotFound
	}

	user, err := srv.userRepo.FindByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAvatarNotFound
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}
	if len(user.Avatar) == 0 {
		return nil, domainerrors.ErrAvatarNotFound
	}

	return user.Avatar, nil
}
