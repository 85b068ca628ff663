package store

import (
	"errors"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrAlreadyResponded is returned when a user or invitation already
// submitted a response to a survey
var ErrAlreadyResponded = errors.New("response already submitted")

// ErrInvitationNotFound is returned when an invitation token is unknown
var ErrInvitationNotFound = errors.New("invitation not found")

// ErrInvitationUsed is returned when an invitation was already consumed
var ErrInvitationUsed = errors.New("invitation already used")

// ResponsesStore abstracts response and invitation storage
type ResponsesStore interface {
	// CreateResponse persists a response with its answers atomically
	CreateResponse(response *model.Response, answers []model.Answer) error

	// ListResponses returns a page of a survey's responses and the total
	// count
	ListResponses(surveyID string, limit, offset int) ([]model.Response, int, error)

	// FetchAnswers returns the answers of one response
	FetchAnswers(responseID string) ([]model.Answer, error)

	// ListSurveyAnswers returns all answers across a survey's responses,
	// for export and aggregation
	ListSurveyAnswers(surveyID string) ([]model.Answer, error)

	// HasUserResponded reports whether a user already responded to a
	// survey
	HasUserResponded(surveyID, userID string) (bool, error)

	// FetchInvitation retrieves an invitation by token.
	// Returns ErrInvitationNotFound for unknown tokens.
	FetchInvitation(token string) (*model.Invitation, error)

	// ConsumeInvitation marks an invitation used and persists the
	// response with its answers in one transaction, so a failed insert
	// never burns the invitation. Returns ErrInvitationUsed when the
	// invitation was already consumed.
	ConsumeInvitation(id string, response *model.Response, answers []model.Answer) error

	// CreateInvitations persists a batch of invitations
	CreateInvitations(invitations []model.Invitation) error
}
