package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/opsdesk/opsdesk/internal/domain/ticket"
	vo "github.com/opsdesk/opsdesk/internal/domain/ticket/valueobjects"
	"github.com/opsdesk/opsdesk/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TicketModel{},
		&models.CommentModel{},
		&models.AttachmentModel{},
		&models.ApprovalRecordModel{},
	)
	require.NoError(t, err)

	return db
}

func saveTestTicket(t *testing.T, repo *TicketRepository, number string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Scanner jams on duplex", "Paper jam on every duplex job", vo.CategoryITSupport, vo.PriorityMedium, 1)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber(number))
	require.NoError(t, repo.Save(context.Background(), tk))
	return tk
}

func TestTicketRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("delete unreferenced ticket", func(t *testing.T) {
		tk := saveTestTicket(t, repo, "TKT-DEL-001")

		err := repo.Delete(ctx, tk.ID())
		assert.NoError(t, err)

		_, err = repo.GetByID(ctx, tk.ID())
		assert.ErrorIs(t, err, ticket.ErrNotFound)
	})

	t.Run("missing ticket", func(t *testing.T) {
		err := repo.Delete(ctx, 9999)
		assert.ErrorIs(t, err, ticket.ErrNotFound)
	})

	t.Run("refused while a comment references the ticket", func(t *testing.T) {
		tk := saveTestTicket(t, repo, "TKT-DEL-002")

		comment := models.CommentModel{TicketID: tk.ID(), UserID: 2, Content: "still reproducible"}
		require.NoError(t, db.Create(&comment).Error)

		err := repo.Delete(ctx, tk.ID())
		assert.ErrorIs(t, err, ticket.ErrHasReferences)

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, tk.ID(), found.ID())
	})

	t.Run("refused while an approval references the ticket", func(t *testing.T) {
		tk := saveTestTicket(t, repo, "TKT-DEL-003")

		approval := models.ApprovalRecordModel{TicketID: tk.ID(), ApproverID: 3, Decision: "approve"}
		require.NoError(t, db.Create(&approval).Error)

		err := repo.Delete(ctx, tk.ID())
		assert.ErrorIs(t, err, ticket.ErrHasReferences)
	})

	t.Run("deletable again once references are gone", func(t *testing.T) {
		tk := saveTestTicket(t, repo, "TKT-DEL-004")

		attachment := models.AttachmentModel{TicketID: tk.ID(), UploaderID: 2, FileName: "jam.log", ContentType: "text/plain", SizeBytes: 128}
		require.NoError(t, db.Create(&attachment).Error)

		err := repo.Delete(ctx, tk.ID())
		require.ErrorIs(t, err, ticket.ErrHasReferences)

		require.NoError(t, db.Delete(&models.AttachmentModel{}, attachment.ID).Error)

		err = repo.Delete(ctx, tk.ID())
		assert.NoError(t, err)
	})
}
