package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/invoice/model"
	"frontdesk/internal/domains/invoice/model/dto"
	"frontdesk/internal/domains/invoice/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
)

const (
	cacheGetAllInvoice = "invoice:gets"
)

type Invoice interface {
	GetAll(ctx context.Context) ([]model.Invoice, error)
	Search(ctx context.Context, req dto.SearchInvoicesRequest) ([]model.Invoice, error)
	Update(ctx context.Context, req dto.UpdateInvoiceRequest) (model.Invoice, error)
	VoidUnpaid(ctx context.Context) error
}

type serviceImpl struct {
	repo  repository.Invoice
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Invoice, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Invoice {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []model.Invoice, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllInvoice, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllInvoice).Msg("cache hit for invoices")

		return res, nil
	}

	res, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllInvoice, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoices to cache")
		}
	}()

	return res, nil
}

// Search caches per filter combination. The keys share the list prefix, so
// any invoice write clears them together with the full list.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchInvoicesRequest) (res []model.Invoice, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInvoice, req)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for invoice search")

		return res, nil
	}

	res, err = s.repo.Search(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to search invoices")

		return res, fmt.Errorf("failed to search invoices: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice search to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateInvoiceRequest) (res model.Invoice, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Update(ctx, req)
	if err != nil {
		log.Error().Err(err).Int64("invoiceID", req.InvoiceID).Msg("failed to update invoice")

		return res, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.invalidate(ctx)

	return res, nil
}

// VoidUnpaid asks the backend to void every unpaid invoice in one sweep.
func (s *serviceImpl) VoidUnpaid(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VoidUnpaidInvoices")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.VoidUnpaid(ctx); err != nil {
		log.Error().Err(err).Msg("failed to void unpaid invoices")

		return fmt.Errorf("failed to void unpaid invoices: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
	}()
}
