package order

import (
	"errors"
	"fmt"

	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/pkg/errs"
	"autoimport/internal/pkg/guard"
)

// ErrVehicleSnapshotIsNotConstructed is returned when a VehicleSnapshot was
// not created through the NewVehicleSnapshot constructor.
var ErrVehicleSnapshotIsNotConstructed = errors.New(
	"VehicleSnapshot must be created via NewVehicleSnapshot constructor",
)

// VehicleSnapshot is an immutable copy of the vehicle data taken at request
// time. The order keeps this copy so later edits or deletion of the listing
// cannot change what the buyer actually requested.
type VehicleSnapshot struct {
	listingID   string
	make        string
	model       string
	year        int
	vehicleType pricing.VehicleType
	priceUsd    int64

	guard guard.ConstructorGuard
}

// NewVehicleSnapshot copies the relevant listing fields into an immutable
// snapshot. The listing reference, make and model must be non-empty, the
// year plausible, and the listed price positive.
func NewVehicleSnapshot(
	listingID string,
	vehicleMake string,
	model string,
	year int,
	vehicleType pricing.VehicleType,
	priceUsd int64,
) (VehicleSnapshot, error) {
	if listingID == "" {
		return VehicleSnapshot{}, errs.NewValueIsRequiredError("listing ID")
	}
	if vehicleMake == "" {
		return VehicleSnapshot{}, errs.NewValueIsRequiredError("vehicle make")
	}
	if model == "" {
		return VehicleSnapshot{}, errs.NewValueIsRequiredError("vehicle model")
	}
	if year < 1950 || year > 2100 {
		return VehicleSnapshot{}, errs.NewValueIsOutOfRangeError("vehicle year", year, 1950, 2100)
	}
	if vehicleType == "" {
		return VehicleSnapshot{}, errs.NewValueIsRequiredError("vehicle type")
	}
	if priceUsd <= 0 {
		return VehicleSnapshot{}, errs.NewValueIsInvalidErrorWithCause("vehicle price",
			fmt.Errorf("%d is not greater than 0", priceUsd))
	}

	return VehicleSnapshot{
		listingID:   listingID,
		make:        vehicleMake,
		model:       model,
		year:        year,
		vehicleType: vehicleType,
		priceUsd:    priceUsd,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the snapshot was created through the constructor.
func (v VehicleSnapshot) Validate() error {
	return v.guard.Validate(ErrVehicleSnapshotIsNotConstructed)
}

// ListingID returns the source listing reference.
func (v VehicleSnapshot) ListingID() string {
	return v.listingID
}

// Make returns the vehicle make.
func (v VehicleSnapshot) Make() string {
	return v.make
}

// Model returns the vehicle model.
func (v VehicleSnapshot) Model() string {
	return v.model
}

// Year returns the vehicle model year.
func (v VehicleSnapshot) Year() int {
	return v.year
}

// VehicleType returns the shipping classification of the vehicle.
func (v VehicleSnapshot) VehicleType() pricing.VehicleType {
	return v.vehicleType
}

// PriceUsd returns the listed price at request time.
func (v VehicleSnapshot) PriceUsd() int64 {
	return v.priceUsd
}

// Description returns a short human-readable label, e.g. "2019 Toyota Camry".
func (v VehicleSnapshot) Description() string {
	return fmt.Sprintf("%d %s %s", v.year, v.make, v.model)
}
