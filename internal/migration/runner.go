// Migration runner
package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Runner struct {
	db      *gorm.DB
	migrate func() error
	logger  *logrus.Logger
}

func NewRunner(dbManager *database.Manager, logger *logrus.Logger) *Runner {
	return &Runner{
		db:      dbManager.DB,
		migrate: dbManager.Migrate,
		logger:  logger,
	}
}

// RunMigrations applies the GORM schema, then every *.sql file in
// migrationsPath in lexical order. An empty path skips the SQL step.
func (r *Runner) RunMigrations(migrationsPath string) error {
	if r.db == nil {
		r.logger.Debug("No relational store configured, skipping migrations")
		return nil
	}

	r.logger.Info("Starting database migrations...")

	if err := r.migrate(); err != nil {
		return fmt.Errorf("GORM auto-migration failed: %w", err)
	}

	if migrationsPath != "" {
		if err := r.runSQLMigrations(migrationsPath); err != nil {
			return fmt.Errorf("SQL migrations failed: %w", err)
		}
	}

	r.logger.Info("Database migrations completed successfully")
	return nil
}

func (r *Runner) runSQLMigrations(migrationsPath string) error {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, fileName := range sqlFiles {
		if err := r.runSQLFile(filepath.Join(migrationsPath, fileName)); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", fileName, err)
		}
		r.logger.WithField("file", fileName).Info("Migration executed successfully")
	}

	return nil
}

func (r *Runner) runSQLFile(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	name := filepath.Base(filePath)
	sqlContent := string(content)

	// Dollar-quoted bodies contain semicolons, so such files go in one Exec.
	if strings.Contains(sqlContent, "$$") {
		if err := r.db.Exec(removeComments(sqlContent)).Error; err != nil {
			return fmt.Errorf("failed to execute %s: %w", name, err)
		}
		return nil
	}

	for i, stmt := range splitSQLStatements(sqlContent) {
		r.logger.WithFields(logrus.Fields{
			"file":      name,
			"statement": i + 1,
		}).Debug("Executing SQL statement")

		if err := r.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to execute statement %d in %s: %w", i+1, name, err)
		}
	}

	return nil
}

func removeComments(sql string) string {
	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// splitSQLStatements drops comment lines and splits on semicolons.
func splitSQLStatements(sql string) []string {
	var lines []string
	for _, line := range strings.Split(sql, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			lines = append(lines, line)
		}
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(lines, " "), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
