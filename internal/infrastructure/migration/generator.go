package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opsdesk/opsdesk/internal/shared/logger"
)

// Generator creates new migration script pairs.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration writes an empty up/down migration pair named after the
// current timestamp so golang-migrate orders them correctly.
func (g *Generator) CreateMigration(name string) error {
	g.logger.Infow("creating new migration", "name", name)

	timestamp := time.Now().Format("20060102150405")

	upFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downFilePath := filepath.Join(g.scriptsPath, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	if err := g.writeFile(upFilePath, g.migrationTemplate(name, false)); err != nil {
		return fmt.Errorf("failed to create up migration file: %w", err)
	}

	if err := g.writeFile(downFilePath, g.migrationTemplate(name, true)); err != nil {
		return fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created",
		"up_file", upFilePath,
		"down_file", downFilePath)

	return nil
}

func (g *Generator) writeFile(filePath, content string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

func (g *Generator) migrationTemplate(name string, down bool) string {
	kind := "Migration"
	if down {
		kind = "Rollback Migration"
	}
	return fmt.Sprintf(`-- %s: %s
-- Created: %s

-- Add your SQL statements here

`, kind, name, time.Now().Format("2006-01-02 15:04:05"))
}
