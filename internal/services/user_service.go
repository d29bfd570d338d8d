package services

import (
	"context"
	"fmt"

	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// DirectoryProvider is the interface that wraps the organisation directory
type DirectoryProvider interface {
	// SearchUsers lists enabled member accounts matching search. A blank search lists all of them.
	SearchUsers(ctx context.Context, search string) ([]models.DirectoryUser, error)
	// CountUsers returns the number of enabled member accounts.
	CountUsers(ctx context.Context) (int, error)
}

type userService struct {
	directory DirectoryProvider
	logger    *zap.Logger
}

// NewUserService creates a new directory user service
func NewUserService(directory DirectoryProvider, logger *zap.Logger) *userService {
	return &userService{
		directory: directory,
		logger:    logger,
	}
}

// GetUsers returns "<user principal name>, <job title>" for every matching user with a mailbox
func (s *userService) GetUsers(ctx context.Context, query string) ([]string, error) {
	users, err := s.directory.SearchUsers(ctx, query)
	if err != nil {
		s.logger.Error("failed to search directory users", zap.Error(err))
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	result := make([]string, 0, len(users))
	for _, u := range users {
		if u.Mail == nil {
			continue
		}
		if u.JobTitle == nil || *u.JobTitle == "" {
			result = append(result, u.UserPrincipalName)
			continue
		}
		result = append(result, u.UserPrincipalName+", "+*u.JobTitle)
	}

	return result, nil
}

// CountUsers returns the number of enabled member accounts in the directory
func (s *userService) CountUsers(ctx context.Context) (int, error) {
	count, err := s.directory.CountUsers(ctx)
	if err != nil {
		s.logger.Error("failed to count directory users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
