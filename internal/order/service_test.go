package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry-pos/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID string, status Status, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, orderID, status, updatedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByStatus(ctx context.Context, status Status) ([]*Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]*Order, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListByPickupDate(ctx context.Context, pickupDate string) ([]*Order, error) {
	args := m.Called(ctx, pickupDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

var serviceNow = time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC)

func newTestService(repo Repository, opts Options) *service {
	gen := NewNumberGenerator(repo, func() time.Time { return serviceNow })
	svc := NewService(repo, gen, opts).(*service)
	svc.now = func() time.Time { return serviceNow }
	return svc
}

func validDraft() *Draft {
	d := NewDraft(serviceNow)
	d.CustomerName = "Ahmed"
	d.PhoneNumber = "0500000000"
	d.Notes = "no starch"
	d.AddQuickItem(catalog.ItemThobe, catalog.ServiceWashIron, decimal.NewFromInt(5))
	d.UpdateQuantity(0, 1)
	return d
}

// --- Tests ---

func TestService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{})

		repo.On("CountByNumberPrefix", ctx, "240615").Return(int64(2), nil)
		repo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		o, err := svc.PlaceOrder(ctx, validDraft())
		require.NoError(t, err)
		assert.NotEmpty(t, o.ID)
		assert.Equal(t, "240615-0003", o.OrderNumber)
		assert.Equal(t, StatusReceived, o.Status)
		assert.Equal(t, "no starch", o.Notes)
		assert.Equal(t, serviceNow, o.CreatedAt)
		assert.Equal(t, o.CreatedAt, o.UpdatedAt)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(10)))
		assert.True(t, o.TotalAmount.Equal(SumItems(o.Items)))
		repo.AssertExpectations(t)
	})

	t.Run("ValidationFailureCreatesNothing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{})

		d := validDraft()
		d.PhoneNumber = ""

		_, err := svc.PlaceOrder(ctx, d)
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "CountByNumberPrefix", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("StoreError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{})

		repo.On("CountByNumberPrefix", ctx, "240615").Return(int64(0), nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.PlaceOrder(ctx, validDraft())
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestService_UpdateStatus_Permissive(t *testing.T) {
	ctx := context.Background()

	t.Run("AnyTransition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{})
		repo.On("UpdateStatus", ctx, "ord-1", StatusReceived, serviceNow).Return(true, nil)

		assert.NoError(t, svc.UpdateStatus(ctx, "ord-1", StatusReceived))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("MissingOrderIsSilent", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{})
		repo.On("UpdateStatus", ctx, "ghost", StatusReady, serviceNow).Return(false, nil)

		assert.NoError(t, svc.UpdateStatus(ctx, "ghost", StatusReady))
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{})

		err := svc.UpdateStatus(ctx, "ord-1", Status("lost"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_UpdateStatus_Strict(t *testing.T) {
	ctx := context.Background()

	t.Run("ForwardStep", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{StrictStatusFlow: true})
		repo.On("GetByID", ctx, "ord-1").Return(&Order{ID: "ord-1", Status: StatusProcessing}, nil)
		repo.On("UpdateStatus", ctx, "ord-1", StatusReady, serviceNow).Return(true, nil)

		assert.NoError(t, svc.UpdateStatus(ctx, "ord-1", StatusReady))
		repo.AssertExpectations(t)
	})

	t.Run("Backwards", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{StrictStatusFlow: true})
		repo.On("GetByID", ctx, "ord-1").Return(&Order{ID: "ord-1", Status: StatusDelivered}, nil)

		err := svc.UpdateStatus(ctx, "ord-1", StatusReceived)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SkippingAStep", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{StrictStatusFlow: true})
		repo.On("GetByID", ctx, "ord-1").Return(&Order{ID: "ord-1", Status: StatusReceived}, nil)

		assert.ErrorIs(t, svc.UpdateStatus(ctx, "ord-1", StatusDelivered), ErrIllegalTransition)
	})

	t.Run("MissingOrderIsSilent", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, Options{StrictStatusFlow: true})
		repo.On("GetByID", ctx, "ghost").Return(nil, ErrOrderNotFound)

		assert.NoError(t, svc.UpdateStatus(ctx, "ghost", StatusProcessing))
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := newTestService(repo, Options{})

	list := []*Order{{ID: "ord-2"}, {ID: "ord-1"}}
	start := serviceNow.Add(-24 * time.Hour)

	repo.On("ListByStatus", ctx, StatusReady).Return(list, nil)
	repo.On("ListByCreatedRange", ctx, start, serviceNow).Return(list, nil)
	repo.On("ListByPickupDate", ctx, "2024-06-17").Return(list[:1], nil)
	repo.On("ListAll", ctx).Return(list, nil)
	repo.On("GetByNumber", ctx, "240615-0001").Return(list[1], nil)

	got, err := svc.ListByStatus(ctx, StatusReady)
	assert.NoError(t, err)
	assert.Equal(t, list, got)

	_, err = svc.ListByStatus(ctx, Status("lost"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err = svc.ListByDateRange(ctx, start, serviceNow)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.ListByPickupDate(ctx, "2024-06-17")
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	o, err := svc.GetByNumber(ctx, "240615-0001")
	assert.NoError(t, err)
	assert.Equal(t, "ord-1", o.ID)
}
