package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittest-team/device-accounting/internal/application/usecase"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

func TestDashboardSummary_CountsByStatus(t *testing.T) {
	e := newEnv()
	uc := usecase.NewDashboardUseCase(e.devices)
	ctx := context.Background()

	seed := []struct {
		inv    string
		status string
	}{
		{"INV-001", entity.DeviceStatusInStock},
		{"INV-002", entity.DeviceStatusInStock},
		{"INV-003", entity.DeviceStatusAssigned},
		{"INV-004", entity.DeviceStatusRetired},
	}
	for _, s := range seed {
		d := &entity.Device{InventoryNumber: s.inv, TypeID: 1, Status: s.status}
		require.NoError(t, e.devices.Create(ctx, d))
	}
	// мягко удалённый девайс в сводку не входит
	deleted := &entity.Device{InventoryNumber: "INV-005", TypeID: 1, Status: entity.DeviceStatusInStock}
	require.NoError(t, e.devices.Create(ctx, deleted))
	require.NoError(t, e.devices.SoftDelete(ctx, deleted.ID, time.Now().UTC()))

	resp, err := uc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TotalDevices)
	assert.Len(t, resp.Devices, 4)
	assert.Equal(t, 2, resp.CountsByStatus[entity.DeviceStatusInStock])
	assert.Equal(t, 1, resp.CountsByStatus[entity.DeviceStatusAssigned])
	assert.Equal(t, 1, resp.CountsByStatus[entity.DeviceStatusRetired])
}
