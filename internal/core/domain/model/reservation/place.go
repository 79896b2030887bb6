package reservation

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

// Place is a pickup or drop-off point.
type Place struct {
	address  kernel.Address
	location kernel.Location
}

func NewPlace(address kernel.Address, location kernel.Location) (Place, error) {
	if err := errors.Join(address.Validate(), location.Validate()); err != nil {
		return Place{}, err
	}
	return Place{address: address, location: location}, nil
}

func (p Place) Address() kernel.Address {
	return p.address
}

func (p Place) Location() kernel.Location {
	return p.location
}

func (p Place) Validate() error {
	return errors.Join(p.address.Validate(), p.location.Validate())
}
