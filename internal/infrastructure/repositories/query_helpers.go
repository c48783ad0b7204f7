package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ico-admin.backend/internal/domain/entities"
	domainerrors "ico-admin.backend/internal/domain/errors"
)

const likeEscape = `\`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching q as a literal substring
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// searchAny adds a case-insensitive substring match of q over columns, joined by OR
func searchAny(db *gorm.DB, q string, columns ...string) *gorm.DB {
	q = strings.TrimSpace(q)
	if q == "" || len(columns) == 0 {
		return db
	}
	pattern := containsPattern(q)
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE LOWER(?) ESCAPE '%s'", col, likeEscape))
		args = append(args, pattern)
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func paginate(db *gorm.DB, offset, limit int) *gorm.DB {
	if limit <= 0 {
		return db
	}
	if offset < 0 {
		offset = 0
	}
	return db.Offset(offset).Limit(limit)
}

// dateBucketExpr renders created_at as a UTC day or month label for the connected dialect
func dateBucketExpr(db *gorm.DB, granularity entities.BucketGranularity) string {
	if db.Dialector.Name() == "sqlite" {
		if granularity == entities.BucketDay {
			return "strftime('%Y-%m-%d', created_at)"
		}
		return "strftime('%Y-%m', created_at)"
	}
	if granularity == entities.BucketDay {
		return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM')"
}

// sumExpr sums a text amount column. Empty strings count as zero.
func sumExpr(column string) string {
	return fmt.Sprintf("COALESCE(SUM(CAST(NULLIF(%s, '') AS NUMERIC)), 0)", column)
}

func amountColumn(field entities.AmountField) (string, error) {
	switch field {
	case entities.AmountPrice, entities.AmountTokenCrypto:
		return string(field), nil
	}
	return "", fmt.Errorf("unsupported amount field %q", field)
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return err
}
