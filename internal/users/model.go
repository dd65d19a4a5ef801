package users

import "time"

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Major     string    `json:"major"`
	CreatedAt time.Time `json:"-"`
}

// CreateInput is the body accepted by POST /user/.
type CreateInput struct {
	Name  string `json:"name"`
	Major string `json:"major"`
}
