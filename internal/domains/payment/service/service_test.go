package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	paymentMocks "frontdesk/internal/domains/payment/mocks"
	"frontdesk/internal/domains/payment/model"
	"frontdesk/internal/domains/payment/model/dto"
	"frontdesk/internal/domains/payment/service"
	"frontdesk/shared/cache"
	cacheMocks "frontdesk/shared/cache/mocks"
)

func newService(t *testing.T) (*paymentMocks.MockPayment, *cacheMocks.MockRedisCache, service.Payment) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestPaymentService_GetAll(t *testing.T) {
	payments := []model.Payment{{PaymentID: 3, InvoiceID: 9, AmountPaid: 250}}

	mockRepo, mockCache, svc := newService(t)
	saved := make(chan struct{})

	mockCache.EXPECT().Get(gomock.Any(), "payment:gets", gomock.Any()).Return(cache.Nil)
	mockRepo.EXPECT().GetAll(gomock.Any()).Return(payments, nil)
	mockCache.EXPECT().
		Save(gomock.Any(), "payment:gets", gomock.Any(), 3600).
		DoAndReturn(func(context.Context, string, any, int) error {
			close(saved)

			return nil
		})

	got, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, payments, got)

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cache save")
	}
}

func TestPaymentService_CreateInvalidatesPaymentAndInvoiceLists(t *testing.T) {
	mockRepo, mockCache, svc := newService(t)
	cleared := make(chan struct{}, 2)

	method := "cash"
	req := dto.CreatePaymentRequest{InvoiceID: 9, Customer: "Ada Lovelace", Amount: 250, Method: &method}

	mockRepo.EXPECT().
		Create(gomock.Any(), req).
		Return(model.Payment{PaymentID: 3, InvoiceID: 9, AmountPaid: 250}, nil)
	mockCache.EXPECT().
		Clear(gomock.Any(), "payment:gets*").
		DoAndReturn(func(context.Context, string) error {
			cleared <- struct{}{}

			return nil
		})
	mockCache.EXPECT().
		Clear(gomock.Any(), "invoice:gets*").
		DoAndReturn(func(context.Context, string) error {
			cleared <- struct{}{}

			return nil
		})

	got, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.PaymentID)

	for range 2 {
		select {
		case <-cleared:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for cache invalidation")
		}
	}
}
