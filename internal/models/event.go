package models

import "time"

const EventTypeDatasetSeeded = "DATASET_SEEDED"

// DatasetSeededEvent is published after a seed run replaces the dataset
type DatasetSeededEvent struct {
	EventType   string    `json:"event_type"`
	Companies   int       `json:"companies"`
	PricePoints int       `json:"price_points"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Timestamp   time.Time `json:"timestamp"`
}
