package model

import "time"

// Region — регион Российской Федерации.
type Region struct {
	ID int64
	// Name — название региона (уникальное).
	Name      string
	CreatedAt time.Time
}
