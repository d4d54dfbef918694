package model

import "errors"

// Islander is a static cast-member record. The catalog is seeded at startup
// and read-only to this service; field names follow the historical schema.
type Islander struct {
	ID             int64   `db:"id" json:"id"`
	FirstName      string  `db:"first_name" json:"first_name"`
	LastName       string  `db:"last_name" json:"last_name"`
	Age            int     `db:"age" json:"age"`
	AstrologySign  string  `db:"astrology_sign" json:"astrology_sign"`
	Hometown       string  `db:"hometown" json:"hometown"`
	EpisodeEntered int     `db:"episode_entered" json:"episode_entered"`
	EpisodeLeft    *int    `db:"episode_left" json:"episode_left"`
	Image          *string `db:"image" json:"image"`
}

// ErrIslanderNotFound is returned when a cast member cannot be found
var ErrIslanderNotFound = errors.New("islander not found")
