// Package reservationrepo persists reservation aggregates with GORM.
package reservationrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"

	"github.com/google/uuid"
)

// ReservationDTO is the reservations table row. StartsAt duplicates date and
// start minutes so that schedule ordering and expiry run on one indexed column.
type ReservationDTO struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	DriverID     *uuid.UUID   `gorm:"type:uuid;index"`
	VehicleID    uuid.UUID    `gorm:"type:uuid;index"`
	Date         time.Time    `gorm:"column:service_date;type:date;index"`
	StartMinutes int          `gorm:"type:smallint"`
	StartsAt     time.Time    `gorm:"index"`
	Transport    TransportDTO `gorm:"embedded;embeddedPrefix:transport_"`
	Source       PlaceDTO     `gorm:"embedded;embeddedPrefix:source_"`
	Destination  PlaceDTO     `gorm:"embedded;embeddedPrefix:destination_"`
}

func (ReservationDTO) TableName() string {
	return "reservations"
}

type TransportDTO struct {
	Fee           int64
	RequiredHours float64
	DistanceKm    float64
	Status        int `gorm:"type:smallint;index"`
}

type PlaceDTO struct {
	Address   string
	Latitude  float64
	Longitude float64
}

func fromDomain(r *reservation.Reservation) ReservationDTO {
	var driverID *uuid.UUID
	if id := r.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	transport := r.Transport()
	return ReservationDTO{
		ID:           r.ID().Bytes(),
		DriverID:     driverID,
		VehicleID:    r.VehicleID().Bytes(),
		Date:         r.Date(),
		StartMinutes: int(r.StartTime().SinceMidnight() / time.Minute),
		StartsAt:     r.StartsAt(),
		Transport: TransportDTO{
			Fee:           transport.Fee(),
			RequiredHours: transport.RequiredHours(),
			DistanceKm:    transport.DistanceKm(),
			Status:        int(transport.Status()),
		},
		Source:      placeFromDomain(r.Source()),
		Destination: placeFromDomain(r.Destination()),
	}
}

func placeFromDomain(p reservation.Place) PlaceDTO {
	return PlaceDTO{
		Address:   p.Address().String(),
		Latitude:  p.Location().Latitude(),
		Longitude: p.Location().Longitude(),
	}
}

func toDomain(dto ReservationDTO) (*reservation.Reservation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	startTime, err := kernel.NewTimeOfDay(dto.StartMinutes/60, dto.StartMinutes%60)
	if err != nil {
		return nil, err
	}

	transport, err := reservation.RestoreTransport(
		dto.Transport.Fee,
		dto.Transport.RequiredHours,
		dto.Transport.DistanceKm,
		reservation.Status(dto.Transport.Status),
	)
	if err != nil {
		return nil, err
	}

	source, err := placeToDomain(dto.Source)
	if err != nil {
		return nil, err
	}
	destination, err := placeToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}

	return reservation.RestoreReservation(id, driverID, vehicleID, dto.Date, startTime, transport, source, destination)
}

func placeToDomain(dto PlaceDTO) (reservation.Place, error) {
	address, err := kernel.NewAddress(dto.Address)
	if err != nil {
		return reservation.Place{}, err
	}
	location, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return reservation.Place{}, err
	}
	return reservation.NewPlace(address, location)
}
