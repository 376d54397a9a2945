package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// portfolioModels are the tables owned by the gorm backend
func portfolioModels() []any {
	return []any{
		&models.Skill{},
		&models.Experience{},
		&ProjectRecord{},
		&models.ProjectImage{},
		&models.Profile{},
		&models.User{},
	}
}

// ColumnReport lists, per table, database columns that no model field maps
// to. A table that does not exist yet is skipped.
func (d Database) ColumnReport(ctx context.Context) (map[string][]string, error) {
	db := d.db.WithContext(ctx)
	report := make(map[string][]string)

	for _, model := range portfolioModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(table) {
			continue
		}
		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("columns of %s: %w", table, err)
		}

		known := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			known[name] = true
		}

		var unmapped []string
		for _, ct := range columnTypes {
			if !known[ct.Name()] {
				unmapped = append(unmapped, ct.Name())
			}
		}
		if len(unmapped) > 0 {
			sort.Strings(unmapped)
			report[table] = unmapped
		}
	}
	return report, nil
}

// logColumnReport warns about drift when the schema is managed elsewhere
func logColumnReport(ctx context.Context, d Database) {
	report, err := d.ColumnReport(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("column report failed")
		return
	}
	for table, columns := range report {
		log.Warn().Str("table", table).Strs("columns", columns).Msg("columns not accounted for in models")
	}
}
