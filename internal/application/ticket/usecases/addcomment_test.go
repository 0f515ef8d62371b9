package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/services/markdown"
)

func newAddCommentUseCase(repo *mockTicketRepository, comments *mockCommentRepository) *AddCommentUseCase {
	return NewAddCommentUseCase(repo, comments, markdown.NewMarkdownService(), &mockEventDispatcher{}, newTestLogger())
}

func TestAddComment_CreatorCommentsWithSanitizedHTML(t *testing.T) {
	tk := reconstructTestTicket(t, vo.StatusOpen, 1, nil)
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	var saved *ticket.Comment
	comments := &mockCommentRepository{
		SaveFunc: func(ctx context.Context, c *ticket.Comment) error {
			saved = c
			return c.SetID(7)
		},
	}
	uc := newAddCommentUseCase(repo, comments)

	result, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:  42,
		AuthorID:  1,
		ActorRole: authorization.RoleRequester,
		Content:   "still **broken** <script>alert(1)</script>",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint(7), result.Comment.ID)
	assert.Contains(t, result.Comment.ContentHTML, "<strong>broken</strong>")
	assert.NotContains(t, result.Comment.ContentHTML, "<script>")
}

func TestAddComment_RequesterCannotAddInternalNote(t *testing.T) {
	tk := reconstructTestTicket(t, vo.StatusOpen, 1, nil)
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	uc := newAddCommentUseCase(repo, &mockCommentRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:   42,
		AuthorID:   1,
		ActorRole:  authorization.RoleRequester,
		Content:    "note to self",
		IsInternal: true,
	})

	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAddComment_ClosedTicketRejected(t *testing.T) {
	tk := reconstructTestTicket(t, vo.StatusClosed, 1, nil)
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	uc := newAddCommentUseCase(repo, &mockCommentRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:  42,
		AuthorID:  1,
		ActorRole: authorization.RoleRequester,
		Content:   "reopening please",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestAddComment_OutsiderForbidden(t *testing.T) {
	tk := reconstructTestTicket(t, vo.StatusOpen, 1, nil)
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	uc := newAddCommentUseCase(repo, &mockCommentRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:  42,
		AuthorID:  66,
		ActorRole: authorization.RoleRequester,
		Content:   "me too",
	})

	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAddComment_TicketNotFound(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, ticket.ErrNotFound
		},
	}
	uc := newAddCommentUseCase(repo, &mockCommentRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID:  404,
		AuthorID:  1,
		ActorRole: authorization.RoleAdmin,
		Content:   "hello",
	})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
