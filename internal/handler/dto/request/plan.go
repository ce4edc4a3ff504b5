package request

import (
	"coach-booking-engine/internal/domain/seatplan"
	"coach-booking-engine/internal/infra/plancache"
)

type PlanQuery struct {
	Position string `form:"position" binding:"omitempty,oneof=h v"`
	Version  string `form:"version" binding:"omitempty,max=16"`
}

func (q PlanQuery) ToKey(busTypeID string) plancache.Key {
	return plancache.NewKey(busTypeID, seatplan.Orientation(q.Position), q.Version)
}

type PlanKeyRequest struct {
	BusTypeID string `json:"busTypeId" binding:"required,max=64"`
	Position  string `json:"position" binding:"omitempty,oneof=h v"`
	Version   string `json:"version" binding:"omitempty,max=16"`
}

type PrefetchRequest struct {
	Plans       []PlanKeyRequest `json:"plans" binding:"required,min=1,max=50,dive"`
	Concurrency int              `json:"concurrency" binding:"omitempty,min=1,max=16"`
}

func (r PrefetchRequest) ToKeys() []plancache.Key {
	keys := make([]plancache.Key, 0, len(r.Plans))
	for _, p := range r.Plans {
		keys = append(keys, plancache.NewKey(p.BusTypeID, seatplan.Orientation(p.Position), p.Version))
	}
	return keys
}
