// Package repository implements the domain repositories on GORM.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/mappers"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
	db "github.com/opsdesk/opsdesk/internal/shared/db"
)

// allowedTicketOrderByFields whitelists ORDER BY columns to keep user
// supplied sort parameters out of raw SQL.
var allowedTicketOrderByFields = map[string]bool{
	"id":          true,
	"number":      true,
	"title":       true,
	"status":      true,
	"priority":    true,
	"category":    true,
	"creator_id":  true,
	"assignee_id": true,
	"created_at":  true,
	"updated_at":  true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

// UpdateStatus persists a transitioned ticket with a compare-and-swap on
// the previous status. Zero affected rows means another transition won.
func (r *TicketRepository) UpdateStatus(ctx context.Context, t *ticket.Ticket, expected vo.TicketStatus) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	updates := map[string]interface{}{
		"status":        model.Status,
		"resolved_time": model.ResolvedTime,
		"closed_at":     model.ClosedAt,
		"version":       model.Version,
		"updated_at":    model.UpdatedAt,
	}

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND status = ?", model.ID, expected.String()).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ticket.ErrStatusConflict
	}

	return nil
}

// Delete removes a ticket unless child records reference it. The
// reference check and the delete are one conditional statement, so a
// comment, attachment, or approval committed concurrently cannot be
// orphaned by a check-then-delete window.
func (r *TicketRepository) Delete(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("NOT EXISTS (SELECT 1 FROM ticket_comments WHERE ticket_id = ?)", ticketID).
		Where("NOT EXISTS (SELECT 1 FROM ticket_attachments WHERE ticket_id = ?)", ticketID).
		Where("NOT EXISTS (SELECT 1 FROM ticket_approvals WHERE ticket_id = ?)", ticketID).
		Delete(&models.TicketModel{}, ticketID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Zero rows deleted: either the ticket is gone or a child row blocked it.
	var count int64
	if err := tx.Model(&models.TicketModel{}).Where("id = ?", ticketID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check ticket existence: %w", err)
	}
	if count == 0 {
		return ticket.ErrNotFound
	}

	return ticket.ErrHasReferences
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ticket by number: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})

	if filters.Status != nil {
		tx = tx.Where("status = ?", filters.Status.String())
	}
	if filters.Priority != nil {
		tx = tx.Where("priority = ?", filters.Priority.String())
	}
	if filters.Category != nil {
		tx = tx.Where("category = ?", filters.Category.String())
	}
	if filters.CreatorID != nil {
		tx = tx.Where("creator_id = ?", *filters.CreatorID)
	}
	if filters.AssigneeID != nil {
		tx = tx.Where("assignee_id = ?", *filters.AssigneeID)
	}
	if filters.InvolvedUserID != nil {
		tx = tx.Where("creator_id = ? OR assignee_id = ?", *filters.InvolvedUserID, *filters.InvolvedUserID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	tx = tx.Order(buildTicketOrderClause(filters.SortBy, filters.SortOrder))

	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		tx = tx.Offset((page - 1) * filters.PageSize).Limit(filters.PageSize)
	}

	var ticketModels []models.TicketModel
	if err := tx.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Status string
		Count  int64
	}
	if err := tx.
		Model(&models.TicketModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Count
	}

	return counts, nil
}

func buildTicketOrderClause(sortBy, sortOrder string) string {
	column := "created_at"
	if allowedTicketOrderByFields[strings.ToLower(sortBy)] {
		column = strings.ToLower(sortBy)
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}
