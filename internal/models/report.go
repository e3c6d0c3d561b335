package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportType classifies a generated report.
type ReportType string

const (
	ReportPerformance     ReportType = "Performance"
	ReportFinancial       ReportType = "Financial"
	ReportCompliance      ReportType = "Compliance"
	ReportStaffEfficiency ReportType = "StaffEfficiency"
)

// Report is the immutable record of one aggregation run. Content and Metrics
// hold JSON payloads serialized once at the store boundary; reports are only
// ever inserted or deleted, never updated.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        ReportType         `bson:"type" json:"type"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Period      string             `bson:"period" json:"period"` // "<start RFC3339>/<end RFC3339>"
	Metrics     string             `bson:"metrics" json:"metrics"`
	GeneratedBy string             `bson:"generated_by" json:"generated_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// FormatPeriod builds the canonical period string stored on a report.
func FormatPeriod(start, end time.Time) string {
	return start.UTC().Format(time.RFC3339) + "/" + end.UTC().Format(time.RFC3339)
}
