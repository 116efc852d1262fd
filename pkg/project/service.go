package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id int) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, companyId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Project{}, err
	}
	return s.repo.Get(ctx, companyId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, p Project) (Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Project{}, err
	}
	p.CompanyId = companyId
	p.Uid = uuid.NewString()
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Errorf("failed to create project for company %d: %v", companyId, err)
		return Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, p Project) (Project, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Project{}, err
	}
	p.CompanyId = companyId
	return s.repo.Update(ctx, p)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, companyId, id)
}
