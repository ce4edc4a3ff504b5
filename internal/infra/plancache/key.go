package plancache

import (
	"fmt"
	"strings"

	"coach-booking-engine/internal/domain/seatplan"
)

const DefaultVersion = "1.1"

// Key identifies one seat layout lookup.
type Key struct {
	BusTypeID string
	Position  seatplan.Orientation
	Version   string
}

func NewKey(busTypeID string, position seatplan.Orientation, version string) Key {
	if !position.IsValid() {
		position = seatplan.Horizontal
	}
	if strings.TrimSpace(version) == "" {
		version = DefaultVersion
	}
	return Key{BusTypeID: strings.TrimSpace(busTypeID), Position: position, Version: strings.TrimSpace(version)}
}

// String is the deterministic storage key.
func (k Key) String() string {
	return fmt.Sprintf("plan:%s:%s:%s", k.BusTypeID, k.Position, k.Version)
}
