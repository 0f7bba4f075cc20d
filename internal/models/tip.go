package models

import "time"

type Tip struct {
	ID            string
	Title         string
	IntroText     string
	BodyText      string
	ImageURL      string
	Street        string
	StreetNo      string
	Zip           string
	City          string
	Telephone     string
	MapPlaceID    *string
	GoogleMapsURI string
	MapLat        *float64
	MapLng        *float64
	CategoryID    *string
	BarrioID      *string
	AuthorID      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Category struct {
	ID           string
	CategoryName string
	CategoryIcon string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Barrio struct {
	ID         string
	BarrioName string
	MapPolygon string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
