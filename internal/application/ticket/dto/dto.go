// Package dto defines the ticket read models returned by use cases.
package dto

import (
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID           uint            `json:"id"`
	Number       string          `json:"number"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Priority     string          `json:"priority"`
	Status       string          `json:"status"`
	CreatorID    uint            `json:"creator_id"`
	AssigneeID   *uint           `json:"assignee_id"`
	Tags         []string        `json:"tags"`
	SLADueTime   *time.Time      `json:"sla_due_time"`
	ResolvedTime *time.Time      `json:"resolved_time"`
	IsOverdue    bool            `json:"is_overdue"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	ClosedAt     *time.Time      `json:"closed_at"`
	Comments     []CommentDTO    `json:"comments"`
	Attachments  []AttachmentDTO `json:"attachments"`
}

type CommentDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	IsInternal  bool      `json:"is_internal"`
	CreatedAt   time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID          uint      `json:"id"`
	UploaderID  uint      `json:"uploader_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type ApprovalRecordDTO struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	ApproverID uint      `json:"approver_id"`
	Decision   string    `json:"decision"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID         uint       `json:"id"`
	Number     string     `json:"number"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	Category   string     `json:"category"`
	CreatorID  uint       `json:"creator_id"`
	AssigneeID *uint      `json:"assignee_id"`
	SLADueTime *time.Time `json:"sla_due_time"`
	IsOverdue  bool       `json:"is_overdue"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func ToTicketDTO(t *ticket.Ticket, comments []*ticket.Comment, attachments []*ticket.Attachment, includeInternal bool) *TicketDTO {
	if t == nil {
		return nil
	}

	commentDTOs := make([]CommentDTO, 0)
	for _, c := range comments {
		if c.IsInternal() && !includeInternal {
			continue
		}
		commentDTOs = append(commentDTOs, ToCommentDTO(c, ""))
	}

	attachmentDTOs := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		attachmentDTOs = append(attachmentDTOs, ToAttachmentDTO(a))
	}

	return &TicketDTO{
		ID:           t.ID(),
		Number:       t.Number(),
		Title:        t.Title(),
		Description:  t.Description(),
		Category:     t.Category().String(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		CreatorID:    t.CreatorID(),
		AssigneeID:   t.AssigneeID(),
		Tags:         t.Tags(),
		SLADueTime:   t.SLADueTime(),
		ResolvedTime: t.ResolvedTime(),
		IsOverdue:    t.IsOverdue(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		ClosedAt:     t.ClosedAt(),
		Comments:     commentDTOs,
		Attachments:  attachmentDTOs,
	}
}

func ToCommentDTO(c *ticket.Comment, contentHTML string) CommentDTO {
	return CommentDTO{
		ID:          c.ID(),
		UserID:      c.UserID(),
		Content:     c.Content(),
		ContentHTML: contentHTML,
		IsInternal:  c.IsInternal(),
		CreatedAt:   c.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          a.ID(),
		UploaderID:  a.UploaderID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		CreatedAt:   a.CreatedAt(),
	}
}

func ToApprovalRecordDTO(r *ticket.ApprovalRecord) ApprovalRecordDTO {
	return ApprovalRecordDTO{
		ID:         r.ID(),
		TicketID:   r.TicketID(),
		ApproverID: r.ApproverID(),
		Decision:   r.Decision().String(),
		Note:       r.Note(),
		CreatedAt:  r.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:         t.ID(),
		Number:     t.Number(),
		Title:      t.Title(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		Category:   t.Category().String(),
		CreatorID:  t.CreatorID(),
		AssigneeID: t.AssigneeID(),
		SLADueTime: t.SLADueTime(),
		IsOverdue:  t.IsOverdue(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}

func ToTicketListItemDTOs(tickets []*ticket.Ticket) []TicketListItemDTO {
	items := make([]TicketListItemDTO, len(tickets))
	for i, t := range tickets {
		items[i] = ToTicketListItemDTO(t)
	}
	return items
}
