package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// ErrNoLocation is returned by a Locator that has nothing to offer.
var ErrNoLocation = errors.New("location unavailable")

// Locator acquires the user location once.
type Locator interface {
	Locate(ctx context.Context) (maps.LatLng, error)
}

// StaticLocator always reports the same coordinates.
type StaticLocator struct {
	At maps.LatLng
}

func (l StaticLocator) Locate(context.Context) (maps.LatLng, error) {
	return l.At, nil
}

// AddressLocator geocodes a free-form address through the backend.
type AddressLocator struct {
	Address   string
	Transport Transport
}

func (l AddressLocator) Locate(ctx context.Context) (maps.LatLng, error) {
	result, err := l.Transport.Geocode(ctx, l.Address)
	if err != nil {
		return maps.LatLng{}, fmt.Errorf("geocode %q: %w", l.Address, err)
	}
	return result.Location, nil
}

// NoLocator never knows where the user is.
type NoLocator struct{}

func (NoLocator) Locate(context.Context) (maps.LatLng, error) {
	return maps.LatLng{}, ErrNoLocation
}

// NewLocator picks a Locator: explicit "lat,lng" coordinates win over an
// address, and neither yields NoLocator.
func NewLocator(location, address string, t Transport) (Locator, error) {
	switch {
	case location != "":
		at, err := maps.ParseLatLng(location)
		if err != nil {
			return nil, fmt.Errorf("parse location: %w", err)
		}
		return StaticLocator{At: at}, nil
	case address != "":
		return AddressLocator{Address: address, Transport: t}, nil
	}
	return NoLocator{}, nil
}
