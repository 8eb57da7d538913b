package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	invoiceMocks "frontdesk/internal/domains/invoice/mocks"
	"frontdesk/internal/domains/invoice/model"
	"frontdesk/internal/domains/invoice/model/dto"
	"frontdesk/internal/domains/invoice/service"
	"frontdesk/shared"
	"frontdesk/shared/cache"
	cacheMocks "frontdesk/shared/cache/mocks"
)

func newService(t *testing.T) (*invoiceMocks.MockInvoice, *cacheMocks.MockRedisCache, service.Invoice) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockRepo := invoiceMocks.NewMockInvoice(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestInvoiceService_SearchCachesPerFilter(t *testing.T) {
	invoices := []model.Invoice{{InvoiceID: 9, CustomerName: "Ada Lovelace", Status: model.StatusUnpaid}}
	req := dto.SearchInvoicesRequest{Customer: "ada", Status: model.StatusUnpaid}
	cacheKey := shared.BuildCacheKeyWithQuery("invoice:gets", req)

	mockRepo, mockCache, svc := newService(t)
	saved := make(chan struct{})

	mockCache.EXPECT().Get(gomock.Any(), cacheKey, gomock.Any()).Return(cache.Nil)
	mockRepo.EXPECT().Search(gomock.Any(), req).Return(invoices, nil)
	mockCache.EXPECT().
		Save(gomock.Any(), cacheKey, gomock.Any(), 3600).
		DoAndReturn(func(context.Context, string, any, int) error {
			close(saved)

			return nil
		})

	got, err := svc.Search(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, invoices, got)

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cache save")
	}
}

func TestInvoiceService_UpdateInvalidatesCache(t *testing.T) {
	mockRepo, mockCache, svc := newService(t)
	cleared := make(chan struct{})

	req := dto.UpdateInvoiceRequest{InvoiceID: 9, Amount: 250, Status: model.StatusPaid}

	mockRepo.EXPECT().
		Update(gomock.Any(), req).
		Return(model.Invoice{InvoiceID: 9, Status: model.StatusPaid}, nil)
	mockCache.EXPECT().
		Clear(gomock.Any(), "invoice:gets*").
		DoAndReturn(func(context.Context, string) error {
			close(cleared)

			return nil
		})

	got, err := svc.Update(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, got.Status)

	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cache invalidation")
	}
}

func TestInvoiceService_VoidUnpaid(t *testing.T) {
	t.Run("invalidates the cached lists", func(t *testing.T) {
		mockRepo, mockCache, svc := newService(t)
		cleared := make(chan struct{})

		mockRepo.EXPECT().VoidUnpaid(gomock.Any()).Return(nil)
		mockCache.EXPECT().
			Clear(gomock.Any(), "invoice:gets*").
			DoAndReturn(func(context.Context, string) error {
				close(cleared)

				return nil
			})

		require.NoError(t, svc.VoidUnpaid(context.Background()))

		select {
		case <-cleared:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for cache invalidation")
		}
	})

	t.Run("repository error surfaces without invalidation", func(t *testing.T) {
		mockRepo, _, svc := newService(t)

		mockRepo.EXPECT().VoidUnpaid(gomock.Any()).Return(errors.New("backend unreachable"))

		assert.Error(t, svc.VoidUnpaid(context.Background()))
	})
}
