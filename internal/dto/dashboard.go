package dto

import (
	"github.com/mwhitfield/pocketbook-backend/internal/models"
)

type DashboardAnalytics struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

type DashboardResponse struct {
	User               *models.User         `json:"user"`
	TotalBalance       float64              `json:"totalBalance"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
	Analytics          DashboardAnalytics   `json:"analytics"`
}
