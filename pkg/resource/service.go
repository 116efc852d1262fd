package resource

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/herbertjm76/bare-resource-horizon/pkg/company"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Resource, error)
	Get(ctx context.Context, id int) (Resource, error)
	Create(ctx context.Context, res Resource) (Resource, error)
	Update(ctx context.Context, res Resource) (Resource, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Resource, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, companyId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Resource, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Resource{}, err
	}
	return s.repo.Get(ctx, companyId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, res Resource) (Resource, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Resource{}, err
	}
	if res.Kind == "" {
		res.Kind = KindPreRegistered
	}
	res.CompanyId = companyId
	res.Uid = uuid.NewString()
	created, err := s.repo.Create(ctx, res)
	if err != nil {
		log.Errorf("failed to create resource for company %d: %v", companyId, err)
		return Resource{}, fmt.Errorf("failed to create resource: %w", err)
	}
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, res Resource) (Resource, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return Resource{}, err
	}
	res.CompanyId = companyId
	updated, err := s.repo.Update(ctx, res)
	if err != nil {
		return Resource{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, companyId, id)
}
