package fakeapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-water-storefront/internal/clients/http/storefront"
	sharederrors "github.com/Apurer/go-water-storefront/internal/shared/errors"
)

func (s *Server) listTickets(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.tickets[currentUserID(c)]
	out := make([]storefront.Ticket, 0, len(stored))
	for _, t := range stored {
		summary := *t
		summary.Comments = nil
		out = append(out, summary)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createTicket(c *gin.Context) {
	var body storefront.NewTicket
	if err := c.ShouldBindJSON(&body); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	title, description := strings.TrimSpace(body.Title), strings.TrimSpace(body.Description)
	if title == "" || description == "" {
		s.responder.Respond(c, sharederrors.ErrValidation.WithDetail("Title and description are required"))
		return
	}
	now := s.now().UTC()
	ticket := &storefront.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      "open",
		CreatedAt:   &now,
	}
	userID := currentUserID(c)
	s.mu.Lock()
	s.tickets[userID] = append([]*storefront.Ticket{ticket}, s.tickets[userID]...)
	out := *ticket
	s.mu.Unlock()
	c.JSON(http.StatusCreated, out)
}

func (s *Server) getTicket(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket := s.findTicket(currentUserID(c), c.Param("id"))
	if ticket == nil {
		s.responder.Respond(c, sharederrors.NewNotFoundProblem("ticket", c.Param("id")))
		return
	}
	out := *ticket
	out.Comments = append([]storefront.TicketComment(nil), ticket.Comments...)
	c.JSON(http.StatusOK, out)
}

func (s *Server) addComment(c *gin.Context) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.responder.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	message := strings.TrimSpace(body.Message)
	if message == "" {
		s.responder.Respond(c, sharederrors.ErrValidation.WithField("message", "is required").WithDetail("Message is required"))
		return
	}
	userID := currentUserID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket := s.findTicket(userID, c.Param("id"))
	if ticket == nil {
		s.responder.Respond(c, sharederrors.NewNotFoundProblem("ticket", c.Param("id")))
		return
	}
	now := s.now().UTC()
	author := s.accounts[userID].user
	ticket.Comments = append(ticket.Comments, storefront.TicketComment{
		ID:        uuid.NewString(),
		Message:   message,
		Author:    &storefront.CommentAuthor{ID: author.ID, Name: author.Name},
		CreatedAt: &now,
	})
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// findTicket expects mu to be held.
func (s *Server) findTicket(userID, id string) *storefront.Ticket {
	for _, t := range s.tickets[userID] {
		if t.ID == id {
			return t
		}
	}
	return nil
}
