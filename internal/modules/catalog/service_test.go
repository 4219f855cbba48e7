package catalog

import (
	"context"
	"errors"
	"testing"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/apperr"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDesignRepo struct {
	mock.Mock
}

func (m *mockDesignRepo) Create(ctx context.Context, d *domain.Design) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil {
		d.ID = 55
	}
	return args.Error(0)
}

func (m *mockDesignRepo) GetByID(ctx context.Context, id int64) (*domain.Design, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Design), args.Error(1)
}

func (m *mockDesignRepo) List(ctx context.Context, f repository.DesignFilter, limit, offset int) ([]domain.Design, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]domain.Design), args.Error(1)
}

func (m *mockDesignRepo) Update(ctx context.Context, d *domain.Design) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDesignRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockDesignerRepo struct {
	mock.Mock
}

func (m *mockDesignerRepo) GetProfile(ctx context.Context, userID int64) (*domain.DesignerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DesignerProfile), args.Error(1)
}

func (m *mockDesignerRepo) UpsertProfile(ctx context.Context, p *domain.DesignerProfile) error {
	return m.Called(ctx, p).Error(0)
}

var (
	designer = domain.Actor{UserID: 2, Role: domain.RoleDesigner}
	client   = domain.Actor{UserID: 1, Role: domain.RoleClient}
	admin    = domain.Actor{UserID: 9, Role: domain.RoleAdmin}
)

func validRequest() DesignRequest {
	return DesignRequest{Title: " Loft ", Description: "Open plan", Price: decimal.RequireFromString("1500.00")}
}

func TestService_CreateDesign_BindsCaller(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))

	designs.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Design) bool {
		return d.DesignerID == designer.UserID && d.Title == "Loft"
	})).Return(nil)

	d, err := svc.CreateDesign(context.Background(), designer, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(55), d.ID)
	designs.AssertExpectations(t)
}

func TestService_CreateDesign_ClientDenied(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))

	_, err := svc.CreateDesign(context.Background(), client, validRequest())

	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
	designs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateDesign_NonPositivePrice(t *testing.T) {
	svc := NewService(new(mockDesignRepo), new(mockDesignerRepo))
	req := validRequest()
	req.Price = decimal.Zero

	_, err := svc.CreateDesign(context.Background(), designer, req)

	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestService_CreateDesign_PriceMustFitColumn(t *testing.T) {
	cases := []struct {
		price string
		want  error
	}{
		{"0.004", ErrPricePrecision},
		{"19.999", ErrPricePrecision},
		{"100000000", ErrPriceTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			designs := new(mockDesignRepo)
			svc := NewService(designs, new(mockDesignerRepo))
			req := validRequest()
			req.Price = decimal.RequireFromString(tc.price)

			_, err := svc.CreateDesign(context.Background(), designer, req)

			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
			designs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateDesign_SubCentPriceRejected(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))
	req := validRequest()
	req.Price = decimal.RequireFromString("0.001")

	_, err := svc.UpdateDesign(context.Background(), designer, 7, req)

	assert.ErrorIs(t, err, ErrPricePrecision)
	designs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateDesign_OwnerOnly(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))
	designs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Design{ID: 7, DesignerID: 99}, nil)

	_, err := svc.UpdateDesign(context.Background(), designer, 7, validRequest())

	assert.ErrorIs(t, err, ErrNotDesignOwner)
	designs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_GetDesign_NotFound(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))
	designs.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetDesign(context.Background(), 404)

	assert.ErrorIs(t, err, ErrDesignNotFound)
}

func TestService_DeleteDesign(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))
	designs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Design{ID: 7, DesignerID: 99}, nil)
	designs.On("Delete", mock.Anything, int64(7)).Return(nil).Once()

	assert.ErrorIs(t, svc.DeleteDesign(context.Background(), designer, 7), ErrNotDesignOwner)
	assert.NoError(t, svc.DeleteDesign(context.Background(), admin, 7))
	assert.True(t, errors.Is(svc.DeleteDesign(context.Background(), client, 7), apperr.ErrPermissionDenied))
	designs.AssertExpectations(t)
}

func TestService_ListDesigns_PassesPage(t *testing.T) {
	designs := new(mockDesignRepo)
	svc := NewService(designs, new(mockDesignerRepo))
	f := repository.DesignFilter{Query: "loft"}
	designs.On("List", mock.Anything, f, 20, 40).Return([]domain.Design{{ID: 1}}, nil)

	out, err := svc.ListDesigns(context.Background(), f, utils.Page{Limit: 20, Offset: 40})

	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestService_UpdateMyProfile(t *testing.T) {
	designers := new(mockDesignerRepo)
	svc := NewService(new(mockDesignRepo), designers)

	designers.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p *domain.DesignerProfile) bool {
		return p.UserID == designer.UserID && p.Bio == "Minimalist"
	})).Return(nil)
	designers.On("GetProfile", mock.Anything, designer.UserID).
		Return(&domain.DesignerProfile{UserID: designer.UserID, Bio: "Minimalist"}, nil)

	p, err := svc.UpdateMyProfile(context.Background(), designer, UpdateProfileRequest{Bio: " Minimalist "})
	require.NoError(t, err)
	assert.Equal(t, "Minimalist", p.Bio)

	_, err = svc.UpdateMyProfile(context.Background(), client, UpdateProfileRequest{Bio: "x"})
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}
