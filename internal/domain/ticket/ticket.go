// Package ticket holds the ticket aggregate, its child entities, and the
// workflow rules that govern status transitions.
package ticket

import (
	"fmt"
	"time"

	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

type Ticket struct {
	id           uint
	number       string
	title        string
	description  string
	category     vo.Category
	priority     vo.Priority
	status       vo.TicketStatus
	creatorID    uint
	assigneeID   *uint
	tags         []string
	slaDueTime   *time.Time
	resolvedTime *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	closedAt     *time.Time
	comments     []*Comment
}

func NewTicket(
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	creatorID uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := time.Now()
	slaDueTime := now.Add(time.Duration(priority.GetSLAHours()) * time.Hour)

	t := &Ticket{
		title:       title,
		description: description,
		category:    category,
		priority:    priority,
		status:      vo.StatusOpen,
		creatorID:   creatorID,
		tags:        []string{},
		slaDueTime:  &slaDueTime,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
		comments:    []*Comment{},
	}

	return t, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID uint,
	assigneeID *uint,
	tags []string,
	slaDueTime *time.Time,
	resolvedTime *time.Time,
	version int,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	if tags == nil {
		tags = []string{}
	}

	return &Ticket{
		id:           id,
		number:       number,
		title:        title,
		description:  description,
		category:     category,
		priority:     priority,
		status:       status,
		creatorID:    creatorID,
		assigneeID:   assigneeID,
		tags:         tags,
		slaDueTime:   slaDueTime,
		resolvedTime: resolvedTime,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		closedAt:     closedAt,
		comments:     []*Comment{},
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) Tags() []string {
	tagsCopy := make([]string, len(t.tags))
	copy(tagsCopy, t.tags)
	return tagsCopy
}

func (t *Ticket) SLADueTime() *time.Time {
	return t.slaDueTime
}

func (t *Ticket) ResolvedTime() *time.Time {
	return t.resolvedTime
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) Comments() []*Comment {
	commentsCopy := make([]*Comment, len(t.comments))
	copy(commentsCopy, t.comments)
	return commentsCopy
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// IsAssignedTo reports whether the given user is the current assignee.
func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if t.status.IsClosed() {
		return fmt.Errorf("cannot assign a closed ticket")
	}

	t.assigneeID = &assigneeID
	t.updatedAt = time.Now()
	t.version++

	return nil
}

// applyStatus mutates the aggregate after the workflow has authorized the
// transition. Callers go through ApplyTransition; this never validates
// guards on its own.
func (t *Ticket) applyStatus(newStatus vo.TicketStatus) {
	t.status = newStatus
	now := time.Now()
	t.updatedAt = now
	t.version++

	if newStatus.IsResolved() && t.resolvedTime == nil {
		t.resolvedTime = &now
	}

	if newStatus.IsClosed() && t.closedAt == nil {
		t.closedAt = &now
	}

	if newStatus.IsOpen() {
		// A rejected ticket returns to open and sheds its resolution marks.
		t.resolvedTime = nil
		t.closedAt = nil
	}
}

// UpdateDetails edits the mutable ticket fields. Status changes go through
// ApplyTransition exclusively.
func (t *Ticket) UpdateDetails(title, description string, priority vo.Priority, tags []string) error {
	if t.status.IsClosed() {
		return fmt.Errorf("cannot edit a closed ticket")
	}
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}

	if priority != t.priority && !t.createdAt.IsZero() {
		newSLADueTime := t.createdAt.Add(time.Duration(priority.GetSLAHours()) * time.Hour)
		t.slaDueTime = &newSLADueTime
	}

	t.title = title
	t.description = description
	t.priority = priority
	if tags != nil {
		t.tags = tags
	}
	t.updatedAt = time.Now()
	t.version++

	return nil
}

func (t *Ticket) AddComment(comment *Comment) error {
	if comment == nil {
		return fmt.Errorf("comment cannot be nil")
	}

	if comment.TicketID() != t.id {
		return fmt.Errorf("comment ticket ID mismatch")
	}

	t.comments = append(t.comments, comment)
	t.updatedAt = time.Now()

	return nil
}

func (t *Ticket) IsOverdue() bool {
	if t.slaDueTime == nil {
		return false
	}

	if t.status.IsClosed() || t.status.IsResolved() {
		return false
	}

	return time.Now().After(*t.slaDueTime)
}

// CanBeViewedBy grants read access to admins, approvers, the creator, and
// the assignee.
func (t *Ticket) CanBeViewedBy(userID uint, role authorization.UserRole) bool {
	if role.IsAdmin() || role == authorization.RoleApprover {
		return true
	}

	if t.creatorID == userID {
		return true
	}

	return t.IsAssignedTo(userID)
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.category.IsValid() {
		return fmt.Errorf("invalid category")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	return nil
}
