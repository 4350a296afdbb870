package domain

import (
	"context"
	"time"
)

// GatewayStatus reflects provider health as last reported.
type GatewayStatus string

const (
	GatewayOperational GatewayStatus = "Operational"
	GatewayDegraded    GatewayStatus = "Degraded"
	GatewayOffline     GatewayStatus = "Offline"
)

// TransactionStatus is the settlement state of a payment attempt.
type TransactionStatus string

const (
	TransactionSucceeded TransactionStatus = "Succeeded"
	TransactionFailed    TransactionStatus = "Failed"
	TransactionPending   TransactionStatus = "Pending"
)

// GatewayProfile is the configured payment provider.
type GatewayProfile struct {
	ID                   string        `gorm:"primaryKey" json:"id"`
	ProviderName         string        `gorm:"type:text;not null" json:"providerName"`
	Status               GatewayStatus `gorm:"type:text;not null" json:"status"`
	FeePercentage        float64       `gorm:"not null" json:"feePercentage"`
	SettlementWindow     string        `gorm:"type:text" json:"settlementWindow"`
	ReconciliationStatus string        `gorm:"type:text" json:"reconciliationStatus"`
	MerchantID           string        `gorm:"type:text" json:"merchantId"`
	LastSync             time.Time     `json:"lastSync"`
}

func (GatewayProfile) TableName() string {
	return "payment_gateways"
}

// Channel is one operating rail of the gateway (UPI, cards, bank
// transfer) with its observed health.
type Channel struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	GatewayID   string        `gorm:"type:text;not null;index" json:"gatewayId"`
	Label       string        `gorm:"type:text;not null" json:"label"`
	Status      GatewayStatus `gorm:"type:text;not null" json:"status"`
	SuccessRate float64       `gorm:"not null" json:"successRate"`
	SLAMinutes  int           `gorm:"not null" json:"slaMinutes"`
}

func (Channel) TableName() string {
	return "payment_channels"
}

// Transaction is one payment attempt received from the gateway.
type Transaction struct {
	ID            string            `gorm:"primaryKey" json:"id"`
	InvoiceNumber string            `gorm:"type:text" json:"invoiceNumber"`
	ClientID      string            `gorm:"type:text" json:"clientId"`
	Amount        float64           `gorm:"not null" json:"amount"`
	Currency      string            `gorm:"type:text;not null" json:"currency"`
	Status        TransactionStatus `gorm:"type:text;not null;index" json:"status"`
	Method        string            `gorm:"type:text" json:"method"`
	ReceivedAt    time.Time         `gorm:"not null;index" json:"receivedAt"`
}

func (Transaction) TableName() string {
	return "payment_transactions"
}

// Insights is the payments dashboard summary.
type Insights struct {
	TotalVolume        float64       `json:"totalVolume"`
	SuccessRate        float64       `json:"successRate"`
	FailureCount       int           `json:"failureCount"`
	PendingCount       int           `json:"pendingCount"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}

// GatewayOverview pairs the provider profile with its channels.
type GatewayOverview struct {
	Gateway  GatewayProfile `json:"gateway"`
	Channels []Channel      `json:"channels"`
}

// Service serves the payments dashboard.
type Service interface {
	Overview(ctx context.Context) (GatewayOverview, error)
	Insights(ctx context.Context) (Insights, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)
}
