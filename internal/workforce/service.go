package workforce

import (
	"context"
	"strings"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
)

// Service implements temporary workforce management.
type Service struct {
	repo Repository
}

// NewService builds a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListWorkers(ctx context.Context, filters httpx.ListParams) ([]Worker, int, error) {
	return s.repo.ListWorkers(ctx, filters)
}

func (s *Service) GetWorker(ctx context.Context, id int64) (Worker, error) {
	return s.repo.GetWorker(ctx, id)
}

func (s *Service) CreateWorker(ctx context.Context, worker Worker) (Worker, error) {
	if worker.Status == "" {
		worker.Status = StatusActive
	}
	return s.repo.CreateWorker(ctx, worker)
}

func (s *Service) UpdateWorker(ctx context.Context, id int64, worker Worker) (Worker, error) {
	if err := s.repo.UpdateWorker(ctx, id, worker); err != nil {
		return Worker{}, err
	}
	return s.repo.GetWorker(ctx, id)
}

// DeleteWorker removes a worker. Workers still on an active engagement
// cannot be removed.
func (s *Service) DeleteWorker(ctx context.Context, id int64) error {
	worker, err := s.repo.GetWorker(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(worker.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.DeleteWorker(ctx, id)
}

func (s *Service) ListTeams(ctx context.Context, filters httpx.ListParams) ([]Team, int, error) {
	return s.repo.ListTeams(ctx, filters)
}

func (s *Service) GetTeam(ctx context.Context, id int64) (Team, error) {
	return s.repo.GetTeam(ctx, id)
}

func (s *Service) CreateTeam(ctx context.Context, team Team) (Team, error) {
	if team.Status == "" {
		team.Status = StatusActive
	}
	if team.Members == nil {
		team.Members = []string{}
	}
	return s.repo.CreateTeam(ctx, team)
}

func (s *Service) UpdateTeam(ctx context.Context, id int64, team Team) (Team, error) {
	if team.Members == nil {
		team.Members = []string{}
	}
	if err := s.repo.UpdateTeam(ctx, id, team); err != nil {
		return Team{}, err
	}
	return s.repo.GetTeam(ctx, id)
}

// DeleteTeam removes a team, unless it is still active.
func (s *Service) DeleteTeam(ctx context.Context, id int64) error {
	team, err := s.repo.GetTeam(ctx, id)
	if err != nil {
		return err
	}
	if strings.EqualFold(team.Status, StatusActive) {
		return httpx.ErrActiveRecord
	}
	return s.repo.DeleteTeam(ctx, id)
}
