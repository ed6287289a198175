package models

// GORM models

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray for PostgreSQL array support
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	quoted := make([]string, len(s))
	for i, item := range s {
		item = strings.ReplaceAll(item, `\`, `\\`)
		item = strings.ReplaceAll(item, `"`, `\"`)
		quoted[i] = `"` + item + `"`
	}
	return fmt.Sprintf("{%s}", strings.Join(quoted, ",")), nil
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	switch v := value.(type) {
	case string:
		items, err := parseArrayLiteral(v)
		if err != nil {
			return err
		}
		*s = items
	case []byte:
		return s.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
	return nil
}

// parseArrayLiteral reads a one-dimensional PostgreSQL text array literal.
func parseArrayLiteral(v string) (StringArray, error) {
	if len(v) < 2 || v[0] != '{' || v[len(v)-1] != '}' {
		return nil, fmt.Errorf("malformed array literal: %q", v)
	}
	body := v[1 : len(v)-1]
	items := StringArray{}
	if body == "" {
		return items, nil
	}

	var cur strings.Builder
	inQuotes, quoted := false, false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case inQuotes && ch == '\\' && i+1 < len(body):
			i++
			cur.WriteByte(body[i])
		case ch == '"':
			inQuotes = !inQuotes
			quoted = true
		case ch == ',' && !inQuotes:
			items = append(items, finishElement(cur.String(), quoted))
			cur.Reset()
			quoted = false
		default:
			cur.WriteByte(ch)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in array literal: %q", v)
	}
	items = append(items, finishElement(cur.String(), quoted))
	return items, nil
}

func finishElement(raw string, quoted bool) string {
	if quoted {
		return raw
	}
	return strings.TrimSpace(raw)
}

// PredictionRow is the relational form of a PredictionRecord.
type PredictionRow struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	Symptoms         StringArray `json:"symptoms" gorm:"type:text[];not null"`
	PredictedDisease string      `json:"predicted_disease" gorm:"not null"`
	UserLat          *float64    `json:"user_lat"`
	UserLng          *float64    `json:"user_lng"`
	CreatedAt        time.Time   `json:"created_at"`
}

func (PredictionRow) TableName() string { return "predictions" }

func NewPredictionRow(r *PredictionRecord) *PredictionRow {
	row := &PredictionRow{
		Symptoms:         StringArray(r.Symptoms),
		PredictedDisease: r.PredictedDisease,
		CreatedAt:        r.CreatedAt,
	}
	if r.UserLocation != nil {
		lat, lng := r.UserLocation.Lat, r.UserLocation.Lng
		row.UserLat = &lat
		row.UserLng = &lng
	}
	return row
}

func (row *PredictionRow) Record() *PredictionRecord {
	r := &PredictionRecord{
		Symptoms:         []string(row.Symptoms),
		PredictedDisease: row.PredictedDisease,
		CreatedAt:        row.CreatedAt,
	}
	if row.UserLat != nil && row.UserLng != nil {
		r.UserLocation = &Location{Lat: *row.UserLat, Lng: *row.UserLng}
	}
	return r
}

// GORM hooks
func (row *PredictionRow) BeforeCreate(tx *gorm.DB) error {
	return row.Record().Validate()
}

// SystemHealth represents service health monitoring
type SystemHealth struct {
	ServiceName    string    `json:"service_name"`
	Status         string    `json:"status"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at"`
}

// PredictionRepository persists prediction records. There is no read path
// in the API; implementations only insert.
type PredictionRepository interface {
	Create(ctx context.Context, record *PredictionRecord) error
}
