package services

import (
	"context"
	"errors"

	"github.com/username/honorarios/src/models"
)

var (
	ErrNoProfile      = errors.New("no participant profile stored for user")
	ErrInvalidFilter  = errors.New("invalid report filter")
	ErrMissingUserID  = errors.New("user id is required")
	ErrInvalidPayload = errors.New("invalid payload")
)

// TransactionSource supplies the transactions a session works on.
type TransactionSource interface {
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
}

// TransactionStore is the writable transaction source used by the reporting service.
type TransactionStore interface {
	TransactionSource
	SaveTransaction(ctx context.Context, userID string, tx models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// ProfileStore returns (nil, nil) when the user has no profile yet.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID string, profile models.Profile) error
}

// EffectiveYearResolver decides which year counts as "current" for a user.
type EffectiveYearResolver interface {
	EffectiveYear(email string) int
}

// TypeReport is the by-type dashboard block.
type TypeReport struct {
	Year          int                                         `json:"year"`
	OperationData map[models.OperationType]models.TypeData    `json:"operationData"`
	ByType        map[models.OperationType]models.TypeSummary `json:"byType"`
	ByGroup       models.GroupReport                          `json:"byGroup"`
	LastColumnSum float64                                     `json:"totalLastColumnSum"`
}

// ChartReport feeds the chart widgets.
type ChartReport struct {
	Year          int                    `json:"year"`
	Pie           []models.PieSlice      `json:"pie"`
	Exclusivity   models.Exclusivity     `json:"exclusivity"`
	ClosedByMonth []models.MonthlyAmount `json:"closedByMonth"`
	OpenTotal     float64                `json:"openTotal"`
	Totals        models.Totals          `json:"totals"`
}

// ReportService is what the HTTP layer talks to.
type ReportService interface {
	ListTransactions(ctx context.Context, userID, status, year, month, query string) ([]models.Transaction, error)
	SaveTransaction(ctx context.Context, userID string, tx models.Transaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID string, profile models.Profile) error

	Summary(ctx context.Context, userID string) (models.CalculationResult, error)
	Filtered(ctx context.Context, userID, year, status string) (models.FilteredFees, error)
	AgentReport(ctx context.Context, userID, year, month string) (models.AgentReport, error)
	TypeReport(ctx context.Context, userID string) (*TypeReport, error)
	ChartReport(ctx context.Context, userID, status string) (*ChartReport, error)

	InvalidateUserCache(userID string)
}
