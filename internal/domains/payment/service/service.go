package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/payment/model"
	"frontdesk/internal/domains/payment/model/dto"
	"frontdesk/internal/domains/payment/repository"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	"frontdesk/shared/constant"
)

const (
	cacheGetAllPayment = "payment:gets"
	cacheGetAllInvoice = "invoice:gets"
)

type Payment interface {
	GetAll(ctx context.Context) ([]model.Payment, error)
	Create(ctx context.Context, req dto.CreatePaymentRequest) (model.Payment, error)
}

type serviceImpl struct {
	repo  repository.Payment
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Payment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllPayment, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllPayment).Msg("cache hit for payments")

		return res, nil
	}

	res, err = s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllPayment, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

// Create records a payment. A payment can settle an invoice, so the cached
// invoice list is invalidated alongside the payment list.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res model.Payment, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Create(ctx, req)
	if err != nil {
		log.Error().Err(err).Int64("invoiceID", req.InvoiceID).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheGetAllInvoice)
	}()

	return res, nil
}
