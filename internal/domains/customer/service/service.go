package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/customer/model"
	"frontdesk/internal/domains/customer/model/dto"
	"frontdesk/internal/domains/customer/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

const (
	cacheGetAllCustomer = "customer:gets"
)

type Customer interface {
	GetAll(ctx context.Context) ([]model.Customer, error)
	Search(ctx context.Context, query string) ([]model.Customer, error)
	Create(ctx context.Context, req dto.CreateCustomerRequest) (model.Customer, error)
	Update(ctx context.Context, id int64, req dto.UpdateCustomerRequest) (model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllCustomer, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllCustomer).Msg("cache hit for customers")

		return res, nil
	}

	res, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllCustomer, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

// Search matches customers by name or email fragment. Queries shorter than
// the configured minimum never reach the backend.
func (s *serviceImpl) Search(ctx context.Context, query string) (res []model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchCustomers")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(query) < s.cfg.Search.MinQueryLength {
		return nil, failure.Validation(fmt.Sprintf("query must be at least %d characters", s.cfg.Search.MinQueryLength)) //nolint:wrapcheck
	}

	res, err = s.repo.Search(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to search customers")

		return res, fmt.Errorf("failed to search customers: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (res model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Create(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return res, fmt.Errorf("failed to create customer: %w", err)
	}

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateCustomerRequest) (res model.Customer, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Update(ctx, id, req)
	if err != nil {
		log.Error().Err(err).Int64("customerID", id).Msg("failed to update customer")

		return res, fmt.Errorf("failed to update customer: %w", err)
	}

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCustomer")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("customerID", id).Msg("failed to delete customer")

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCustomer)
	}()
}
