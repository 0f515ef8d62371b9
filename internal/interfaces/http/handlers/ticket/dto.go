package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/opsdesk/internal/application/ticket/usecases"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
	"github.com/opsdesk/opsdesk/internal/shared/errors"
	"github.com/opsdesk/opsdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=5000"`
	Category    string   `json:"category" binding:"required"`
	Priority    string   `json:"priority" binding:"required"`
	AssigneeID  *uint    `json:"assignee_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint, actorRole authorization.UserRole) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
		CreatorID:   creatorID,
		ActorRole:   actorRole,
		AssigneeID:  r.AssigneeID,
		Tags:        r.Tags,
	}
}

type UpdateTicketRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=5000"`
	Priority    string   `json:"priority" binding:"required"`
	Tags        []string `json:"tags,omitempty"`
}

type TransitionTicketRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Decision     string `json:"decision,omitempty"`
	Note         string `json:"note,omitempty" binding:"max=2000"`
	Force        bool   `json:"force,omitempty"`
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type AddCommentRequest struct {
	Content    string `json:"content" binding:"required,max=10000"`
	IsInternal bool   `json:"is_internal"`
}

type ListTicketsRequest struct {
	Page       int    `json:"page" validate:"gte=1"`
	PageSize   int    `json:"page_size" validate:"gte=1,lte=100"`
	Status     string `json:"status" validate:"omitempty,oneof=open in_progress pending resolved closed"`
	Priority   string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Category   string `json:"category" validate:"omitempty,max=100"`
	CreatorID  *uint  `json:"creator_id"`
	AssigneeID *uint  `json:"assignee_id"`
	SortBy     string `json:"sort_by" validate:"omitempty,oneof=id number title status priority category creator_id assignee_id created_at updated_at"`
	SortOrder  string `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		creatorID, err := strconv.ParseUint(creatorIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid creator_id")
		}
		id := uint(creatorID)
		req.CreatorID = &id
	}

	if assigneeIDStr := c.Query("assignee_id"); assigneeIDStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeIDStr, 10, 32)
		if err != nil {
			return nil, errors.NewValidationError("invalid assignee_id")
		}
		id := uint(assigneeID)
		req.AssigneeID = &id
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	return req, nil
}
