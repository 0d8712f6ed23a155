package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/usecase"
	"github.com/region-service/internal/usecase/dto"
)

type userFixture struct {
	store    *MockStore
	cache    *MockCacheRepository
	resolver *MockLocationResolver
	uc       *usecase.UserUseCase
}

func newUserFixture() *userFixture {
	f := &userFixture{
		store:    newMockStore(),
		cache:    &MockCacheRepository{},
		resolver: &MockLocationResolver{},
	}
	f.uc = usecase.NewUserUseCase(f.store, f.cache, f.resolver, time.Minute, nil, zap.NewNop())
	return f
}

func libertyAddress() *dto.AddressInput {
	return &dto.AddressInput{Street: "Liberty Island", City: "New York", ZipCode: "10004"}
}

func TestUserUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("address is resolved to coordinates", func(t *testing.T) {
		f := newUserFixture()
		resolved := domain.Location{Coordinates: &domain.Coordinates{Latitude: 40.689247, Longitude: -74.044502}}
		f.resolver.On("ResolveLocation", mock.Anything, domain.Location{Address: libertyAddress().ToDomain()}).
			Return(resolved, nil)
		f.store.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := f.uc.Create(ctx, dto.CreateUserRequest{
			Name:    "Alice",
			Email:   "alice@example.com",
			Address: libertyAddress(),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Liberty Island", user.Address.Street)
		assert.Equal(t, resolved.Coordinates, user.Coordinates)
		assert.Empty(t, user.Regions)
		assert.NotNil(t, user.Regions)
	})

	t.Run("coordinates are resolved to an address", func(t *testing.T) {
		f := newUserFixture()
		f.resolver.On("ResolveLocation", mock.Anything, mock.Anything).
			Return(domain.Location{Address: &domain.Address{Street: "Statue of Liberty", City: "New York", ZipCode: "NY 10004"}}, nil)
		f.store.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, err := f.uc.Create(ctx, dto.CreateUserRequest{
			Name:        "Alice",
			Email:       "alice@example.com",
			Coordinates: &dto.CoordinatesInput{Latitude: ptrFloat64(40.689247), Longitude: ptrFloat64(-74.044502)},
		})
		require.NoError(t, err)
		assert.Equal(t, "Statue of Liberty", user.Address.Street)
		assert.Equal(t, 40.689247, user.Coordinates.Latitude)
	})

	t.Run("unresolved address is stored without coordinates", func(t *testing.T) {
		f := newUserFixture()
		f.resolver.On("ResolveLocation", mock.Anything, mock.Anything).
			Return(domain.Location{Address: libertyAddress().ToDomain()}, nil)
		f.store.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		user, err := f.uc.Create(ctx, dto.CreateUserRequest{Name: "Alice", Email: "a@b.c", Address: libertyAddress()})
		require.NoError(t, err)
		assert.Nil(t, user.Coordinates)
	})

	t.Run("both address and coordinates", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.uc.Create(ctx, dto.CreateUserRequest{
			Name:        "Alice",
			Email:       "a@b.c",
			Address:     libertyAddress(),
			Coordinates: &dto.CoordinatesInput{Latitude: ptrFloat64(1), Longitude: ptrFloat64(1)},
		})
		assert.ErrorIs(t, err, errors.ErrInvalidParameter)
		f.resolver.AssertNotCalled(t, "ResolveLocation", mock.Anything, mock.Anything)
		f.store.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("neither address nor coordinates", func(t *testing.T) {
		f := newUserFixture()

		_, err := f.uc.Create(ctx, dto.CreateUserRequest{Name: "Alice", Email: "a@b.c"})
		assert.ErrorIs(t, err, errors.ErrInvalidParameter)
	})

	t.Run("resolver failure persists nothing", func(t *testing.T) {
		f := newUserFixture()
		f.resolver.On("ResolveLocation", mock.Anything, mock.Anything).
			Return(domain.Location{}, errors.ErrResolution)

		_, err := f.uc.Create(ctx, dto.CreateUserRequest{Name: "Alice", Email: "a@b.c", Address: libertyAddress()})
		assert.ErrorIs(t, err, errors.ErrResolution)
		f.store.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("without resolver the input is stored as is", func(t *testing.T) {
		store := newMockStore()
		store.users.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewUserUseCase(store, nil, nil, time.Minute, nil, zap.NewNop())

		user, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Alice", Email: "a@b.c", Address: libertyAddress()})
		require.NoError(t, err)
		assert.Nil(t, user.Coordinates)
	})
}

func TestUserUseCase_GetByID(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{ID: "u1", Name: "Alice", Regions: []string{"r1"}}

	t.Run("cache hit skips the store", func(t *testing.T) {
		f := newUserFixture()
		f.cache.On("GetUser", mock.Anything, "u1").Return(stored, nil)

		user, err := f.uc.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, stored, user)
		f.store.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		f := newUserFixture()
		f.cache.On("GetUser", mock.Anything, "u1").Return(nil, nil)
		f.store.users.On("GetByID", mock.Anything, "u1").Return(stored, nil)
		f.cache.On("SetUser", mock.Anything, stored, time.Minute).Return(nil)

		user, err := f.uc.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"r1"}, user.Regions)
		f.cache.AssertExpectations(t)
	})

	t.Run("cache failure falls through to the store", func(t *testing.T) {
		f := newUserFixture()
		f.cache.On("GetUser", mock.Anything, "u1").Return(nil, stderrors.New("connection refused"))
		f.store.users.On("GetByID", mock.Anything, "u1").Return(stored, nil)
		f.cache.On("SetUser", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("connection refused"))

		user, err := f.uc.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newUserFixture()
		f.cache.On("GetUser", mock.Anything, "missing").Return(nil, nil)
		f.store.users.On("GetByID", mock.Anything, "missing").Return(nil, errors.ErrUserNotFound)

		_, err := f.uc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		f.cache.AssertNotCalled(t, "SetUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *domain.User {
		return &domain.User{
			ID:          "u1",
			Name:        "Alice",
			Email:       "alice@example.com",
			Address:     &domain.Address{Street: "Old St", City: "Boston", ZipCode: "02101"},
			Coordinates: &domain.Coordinates{Latitude: 42.36, Longitude: -71.05},
			Regions:     []string{"r1"},
		}
	}

	t.Run("name only keeps location", func(t *testing.T) {
		f := newUserFixture()
		f.store.users.On("GetByID", mock.Anything, "u1").Return(existing(), nil)
		f.store.users.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("InvalidateUser", mock.Anything, "u1").Return(nil)

		user, err := f.uc.Update(ctx, "u1", dto.UpdateUserRequest{Name: ptrString("Alicia")})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", user.Name)
		assert.Equal(t, 42.36, user.Coordinates.Latitude)
		assert.Equal(t, []string{"r1"}, user.Regions)
		f.resolver.AssertNotCalled(t, "ResolveLocation", mock.Anything, mock.Anything)
		f.cache.AssertExpectations(t)
	})

	t.Run("new address replaces coordinates with resolved ones", func(t *testing.T) {
		f := newUserFixture()
		resolved := &domain.Coordinates{Latitude: 40.689247, Longitude: -74.044502}
		f.store.users.On("GetByID", mock.Anything, "u1").Return(existing(), nil)
		f.resolver.On("ResolveLocation", mock.Anything, domain.Location{Address: libertyAddress().ToDomain()}).
			Return(domain.Location{Coordinates: resolved}, nil)
		f.store.users.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("InvalidateUser", mock.Anything, "u1").Return(nil)

		user, err := f.uc.Update(ctx, "u1", dto.UpdateUserRequest{Address: libertyAddress()})
		require.NoError(t, err)
		assert.Equal(t, "Liberty Island", user.Address.Street)
		assert.Equal(t, resolved, user.Coordinates)
	})

	t.Run("both supplied skips resolution", func(t *testing.T) {
		f := newUserFixture()
		f.store.users.On("GetByID", mock.Anything, "u1").Return(existing(), nil)
		f.store.users.On("Update", mock.Anything, mock.Anything).Return(nil)
		f.cache.On("InvalidateUser", mock.Anything, "u1").Return(nil)

		user, err := f.uc.Update(ctx, "u1", dto.UpdateUserRequest{
			Address:     libertyAddress(),
			Coordinates: &dto.CoordinatesInput{Latitude: ptrFloat64(1), Longitude: ptrFloat64(2)},
		})
		require.NoError(t, err)
		assert.Equal(t, 2.0, user.Coordinates.Longitude)
		f.resolver.AssertNotCalled(t, "ResolveLocation", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newUserFixture()
		f.store.users.On("GetByID", mock.Anything, "missing").Return(nil, errors.ErrUserNotFound)

		_, err := f.uc.Update(ctx, "missing", dto.UpdateUserRequest{Name: ptrString("x")})
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestUserUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the deleted user and invalidates cache", func(t *testing.T) {
		f := newUserFixture()
		f.store.users.On("Delete", mock.Anything, "u1").Return(&domain.User{ID: "u1", Regions: []string{"r1", "r2"}}, nil)
		f.cache.On("InvalidateUser", mock.Anything, "u1").Return(nil)

		user, err := f.uc.Delete(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, user.Regions, 2)
		f.cache.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		f := newUserFixture()
		f.store.users.On("Delete", mock.Anything, "missing").Return(nil, errors.ErrUserNotFound)

		_, err := f.uc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
		f.cache.AssertNotCalled(t, "InvalidateUser", mock.Anything, mock.Anything)
	})
}
