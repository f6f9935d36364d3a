package model

import "time"

type Movie struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Duration  int       `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Showtime 場次. Price is per ticket, in VND.
type Showtime struct {
	ID         int64     `json:"id" db:"id"`
	MovieID    int64     `json:"movie_id" db:"movie_id"`
	Room       string    `json:"room" db:"room"`
	Format     string    `json:"format" db:"format"`
	StartsAt   time.Time `json:"starts_at" db:"starts_at"`
	Price      int64     `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	MovieTitle string    `json:"movie_title" db:"-"`
}
