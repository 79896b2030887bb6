// Package driverrepo persists driver aggregates with GORM.
package driverrepo

import (
	"freight/internal/core/domain/model/driver"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the drivers table row. A user has at most one driver profile.
type DriverDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	VehicleID uuid.UUID `gorm:"type:uuid;index"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:        d.ID().Bytes(),
		UserID:    d.UserID().Bytes(),
		VehicleID: d.VehicleID().Bytes(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, userID, vehicleID)
}
