package commands_test

import (
	"context"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/trip"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Get(ctx context.Context) (*trip.Trip, error) {
	args := m.Called(ctx)
	active, _ := args.Get(0).(*trip.Trip)
	return active, args.Error(1)
}

func (m *MockTripRepository) Save(ctx context.Context, aggregate *trip.Trip) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockTripUoW struct{ mock.Mock }

func (m *MockTripUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTripUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTripUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTripUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

type MockTripUoWFactory struct{ mock.Mock }

func (m *MockTripUoWFactory) Create() commands.TripUoW {
	args := m.Called()
	return args.Get(0).(commands.TripUoW)
}
