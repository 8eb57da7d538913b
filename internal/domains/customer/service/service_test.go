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
	customerMocks "frontdesk/internal/domains/customer/mocks"
	"frontdesk/internal/domains/customer/model"
	"frontdesk/internal/domains/customer/model/dto"
	"frontdesk/internal/domains/customer/service"
	"frontdesk/shared/cache"
	cacheMocks "frontdesk/shared/cache/mocks"
	"frontdesk/shared/failure"
)

func newService(t *testing.T) (*customerMocks.MockCustomer, *cacheMocks.MockRedisCache, service.Customer) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Search.MinQueryLength = 2

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestCustomerService_Search(t *testing.T) {
	t.Run("below-minimum query never reaches the repository", func(t *testing.T) {
		_, _, svc := newService(t)

		_, err := svc.Search(context.Background(), "a")

		require.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("forwards the query", func(t *testing.T) {
		mockRepo, _, svc := newService(t)

		mockRepo.EXPECT().
			Search(gomock.Any(), "ada").
			Return([]model.Customer{{CustomerID: 5, Name: "Ada Lovelace"}}, nil)

		customers, err := svc.Search(context.Background(), "ada")

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Ada Lovelace", customers[0].Name)
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		mockRepo, _, svc := newService(t)

		mockRepo.EXPECT().
			Search(gomock.Any(), "ada").
			Return(nil, errors.New("backend unreachable"))

		_, err := svc.Search(context.Background(), "ada")

		assert.Error(t, err)
	})
}

func TestCustomerService_GetAll(t *testing.T) {
	customers := []model.Customer{{CustomerID: 5, Name: "Ada Lovelace"}}

	mockRepo, mockCache, svc := newService(t)
	saved := make(chan struct{})

	mockCache.EXPECT().Get(gomock.Any(), "customer:gets", gomock.Any()).Return(cache.Nil)
	mockRepo.EXPECT().GetAll(gomock.Any()).Return(customers, nil)
	mockCache.EXPECT().
		Save(gomock.Any(), "customer:gets", gomock.Any(), 3600).
		DoAndReturn(func(context.Context, string, any, int) error {
			close(saved)

			return nil
		})

	got, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, customers, got)

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cache save")
	}
}

func TestCustomerService_CreateInvalidatesCache(t *testing.T) {
	mockRepo, mockCache, svc := newService(t)
	cleared := make(chan struct{})

	req := dto.CreateCustomerRequest{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+44 20 7946 0018"}

	mockRepo.EXPECT().
		Create(gomock.Any(), req).
		Return(model.Customer{CustomerID: 5, Name: "Ada Lovelace"}, nil)
	mockCache.EXPECT().
		Clear(gomock.Any(), "customer:gets*").
		DoAndReturn(func(context.Context, string) error {
			close(cleared)

			return nil
		})

	customer, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(5), customer.CustomerID)

	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cache invalidation")
	}
}
