package http

import (
	"encoding/json"
	"time"

	"magicmover/internal/core/application/usecases/queries"
	"magicmover/internal/core/domain/model/activity"
	"magicmover/internal/core/domain/model/kernel"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Weights travel as JSON numbers but are decoded into json.Number so that
// 0.1 stays exactly 0.1 on its way to kernel.Weight.

type NewItem struct {
	Name   string      `json:"name"`
	Weight json.Number `json:"weight"`
}

type NewMover struct {
	Name        string      `json:"name"`
	WeightLimit json.Number `json:"weightLimit"`
}

type LoadItems struct {
	ItemIDs []string `json:"itemIds"`
}

type Item struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Weight    json.Number `json:"weight"`
	CreatedAt time.Time   `json:"createdAt"`
}

type Mover struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	WeightLimit       json.Number `json:"weightLimit"`
	CurrentWeight     json.Number `json:"currentWeight"`
	State             string      `json:"state"`
	Items             []string    `json:"items"`
	CompletedMissions int         `json:"completedMissions"`
	Version           int64       `json:"version"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type Activity struct {
	ID           string               `json:"id"`
	MoverID      string               `json:"moverId"`
	ActivityType string               `json:"activityType"`
	Details      activity.FlatDetails `json:"details"`
	CreatedAt    time.Time            `json:"createdAt"`
}

type Performer struct {
	Mover    Mover `json:"mover"`
	Missions int   `json:"missionsCompleted"`
}

func weightNumber(w kernel.Weight) json.Number {
	return json.Number(w.String())
}

func toItem(v queries.ItemView) Item {
	return Item{
		ID:        v.ID.String(),
		Name:      v.Name,
		Weight:    weightNumber(v.Weight),
		CreatedAt: v.CreatedAt,
	}
}

func toMover(v queries.MoverView) Mover {
	return Mover{
		ID:                v.ID.String(),
		Name:              v.Name,
		WeightLimit:       weightNumber(v.WeightLimit),
		CurrentWeight:     weightNumber(v.CurrentWeight),
		State:             v.State.String(),
		Items:             kernel.UUIDsToStrings(v.Items),
		CompletedMissions: v.CompletedMissions,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func toActivity(v queries.ActivityView) Activity {
	return Activity{
		ID:           v.ID.String(),
		MoverID:      v.MoverID.String(),
		ActivityType: v.Type.String(),
		Details:      activity.Flatten(v.Details),
		CreatedAt:    v.CreatedAt,
	}
}

func toPerformer(v queries.PerformerView) Performer {
	return Performer{Mover: toMover(v.Mover), Missions: v.Missions}
}
