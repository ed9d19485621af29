package dto

import (
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// JourneyRequest parámetros de GET /customers/:code/journey.
type JourneyRequest struct {
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Period string `query:"period" validate:"omitempty,oneof=weekly monthly quarterly yearly"`
}

// JourneyResponse métricas del journey más la serie de actividad.
type JourneyResponse struct {
	CardCode     string                   `json:"cardCode"`
	CustomerName string                   `json:"customerName"`
	From         *time.Time               `json:"from,omitempty"`
	To           *time.Time               `json:"to,omitempty"`
	Period       scoring.Period           `json:"period"`
	Metrics      scoring.JourneyMetrics   `json:"metrics"`
	Series       []scoring.ActivityBucket `json:"series"`
}

// InsightsRequest parámetros de GET /insights.
type InsightsRequest struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// PerformanceRequest parámetros de /performance.
type PerformanceRequest struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// RecommendationRequest parámetros de /recommendations/*. Limit 0 usa el default.
type RecommendationRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
