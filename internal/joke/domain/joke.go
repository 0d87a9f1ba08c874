package domain

import "time"

type ID string

type Joke struct {
	ID         ID
	Name       string
	Content    string
	JokesterID string
	CreatedAt  time.Time
}

// Summary is the listing shape: enough for a link, nothing more.
type Summary struct {
	ID   ID
	Name string
}
