package domain

import "github.com/google/uuid"

type Subscriber struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	UnsubscribeToken string    `json:"-"`
}
