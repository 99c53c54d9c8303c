package models

import "time"

// Attendee is a booking record appended to an event. It shares a username with
// User but is not foreign-key linked; any payload passing the schema books.
type Attendee struct {
	Username string `json:"username" bson:"username" validate:"required"`
}

type Event struct {
	EventID     string     `json:"eventid" bson:"eventid"`
	Title       string     `json:"title" bson:"title" validate:"required"`
	Description string     `json:"description" bson:"description" validate:"required"`
	Artist      string     `json:"artist" bson:"artist" validate:"required"`
	Attendees   []Attendee `json:"attendees" bson:"attendees"`
	// Version guards the fetch-merge-write cycle; bumped on every overwrite.
	Version   int64     `json:"-" bson:"version"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username" validate:"required"`
	Bio       string    `json:"bio" bson:"bio" validate:"required"`
	DOB       string    `json:"dob" bson:"dob" validate:"required"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
