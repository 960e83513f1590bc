package admin

import (
	"log/slog"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/auth"
)

type Repository interface {
	CollectStats() (*Stats, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Stats(principal *auth.Principal) (*Stats, error) {
	stats, err := s.repo.CollectStats()
	if err != nil {
		return nil, internal.NewInternalError("failed to collect statistics", err)
	}
	return stats, nil
}
