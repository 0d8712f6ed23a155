package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/usecase/dto"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, req dto.ListRequest) (*dto.UserListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserListResponse), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockRegionService struct {
	mock.Mock
}

func (m *MockRegionService) Create(ctx context.Context, req dto.CreateRegionRequest) (*domain.Region, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionService) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionService) List(ctx context.Context, req dto.ListRequest) (*dto.RegionListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RegionListResponse), args.Error(1)
}

func (m *MockRegionService) Update(ctx context.Context, id string, req dto.UpdateRegionRequest) (*domain.Region, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionService) Delete(ctx context.Context, id string) (*domain.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

type MockGeoQueryService struct {
	mock.Mock
}

func (m *MockGeoQueryService) RegionsContainingPoint(
	ctx context.Context,
	req dto.ContainingPointRequest,
) ([]*domain.Region, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Region), args.Error(1)
}

func (m *MockGeoQueryService) RegionsWithinDistance(
	ctx context.Context,
	req dto.WithinDistanceRequest,
) ([]*domain.RegionWithUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RegionWithUser), args.Error(1)
}

type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) ResolveLocation(ctx context.Context, location domain.Location) (domain.Location, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(domain.Location), args.Error(1)
}

type envelopeMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type envelopeError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

// envelope - общий формат ответа API
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *envelopeMeta   `json:"meta"`
	Error *envelopeError  `json:"error"`
}

func jsonRequest(method, target, body string) *http.Request {
	req, _ := http.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}

func ptrFloat64(f float64) *float64 {
	return &f
}
