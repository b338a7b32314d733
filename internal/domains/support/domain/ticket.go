package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired       = errors.New("ticket title is required")
	ErrDescriptionRequired = errors.New("ticket description is required")
	ErrMessageRequired     = errors.New("comment message is required")
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Comment is one message on a ticket.
type Comment struct {
	ID         string
	Message    string
	AuthorName string
	CreatedAt  *time.Time
}

// Author falls back to a generic label when the server did not populate the author.
func (c Comment) Author() string {
	if c.AuthorName == "" {
		return "User"
	}
	return c.AuthorName
}

// Ticket is a customer support ticket.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      Status
	CreatedAt   *time.Time
	Comments    []Comment
}

// Draft is a ticket about to be filed.
type Draft struct {
	Title       string
	Description string
}

// NewDraft trims and validates the support form.
func NewDraft(title, description string) (Draft, error) {
	d := Draft{Title: strings.TrimSpace(title), Description: strings.TrimSpace(description)}
	if d.Title == "" {
		return Draft{}, ErrTitleRequired
	}
	if d.Description == "" {
		return Draft{}, ErrDescriptionRequired
	}
	return d, nil
}
