package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KwakuBoohene/ackontant/internal/apperrors"
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/dto"
	"github.com/KwakuBoohene/ackontant/internal/middleware"
)

// userService provides user profile operations. Identity comes from the
// external auth provider; this service only manages the profile row.
type userService struct {
	userRepo         portsrepo.UserRepositoryFacade
	currencyRepo     portsrepo.CurrencyRepositoryFacade
	baseCurrencyCode string
}

// NewUserService creates a new user service. baseCurrencyCode is the platform
// default assigned to users who do not pick one.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, baseCurrencyCode string) portssvc.UserSvcFacade {
	return &userService{
		userRepo:         userRepo,
		currencyRepo:     currencyRepo,
		baseCurrencyCode: baseCurrencyCode,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find user by ID", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, userID string, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	baseCurrency := s.baseCurrencyCode
	if req.BaseCurrencyCode != "" {
		baseCurrency = req.BaseCurrencyCode
	}

	// The base currency must exist before any account can reference it.
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, baseCurrency); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown base currency %s", apperrors.ErrValidation, baseCurrency)
		}
		return nil, fmt.Errorf("failed to validate base currency: %w", err)
	}

	user := domain.User{
		UserID:           userID,
		Username:         req.Username,
		BaseCurrencyCode: baseCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Username != nil && *req.Username != user.Username {
		user.Username = *req.Username
		updated = true
	}

	if !updated {
		return user, nil
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logger.Info("User updated successfully", slog.String("user_id", userID))
	return user, nil
}
