package service

import (
	"context"
	"encoding/json"

	"haulhub/internal/domain"
	"haulhub/internal/redis"
	"haulhub/internal/repository"
)

// ReportService aggregates fleet and revenue figures for the admin
// reports page. Summaries scan the whole haul table, so results are
// cached briefly in Redis.
type ReportService struct {
	haulRepo   repository.HaulRepository
	truckRepo  repository.TruckRepository
	cacheStore redis.CacheStoreInterface
}

// NewReportService creates a new ReportService.
func NewReportService(
	haulRepo repository.HaulRepository,
	truckRepo repository.TruckRepository,
	cacheStore redis.CacheStoreInterface,
) *ReportService {
	return &ReportService{
		haulRepo:   haulRepo,
		truckRepo:  truckRepo,
		cacheStore: cacheStore,
	}
}

// ReportSummary holds the dashboard aggregates.
type ReportSummary struct {
	TotalHauls      int     `json:"total_hauls"`
	PendingHauls    int     `json:"pending_hauls"`
	AssignedHauls   int     `json:"assigned_hauls"`
	InProgressHauls int     `json:"in_progress_hauls"`
	CompletedHauls  int     `json:"completed_hauls"`
	CancelledHauls  int     `json:"cancelled_hauls"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageRevenue  float64 `json:"average_revenue"`
	TotalDistance   float64 `json:"total_distance_miles"`
	AverageDistance float64 `json:"average_distance_miles"`

	TrucksAvailable   int `json:"trucks_available"`
	TrucksInUse       int `json:"trucks_in_use"`
	TrucksMaintenance int `json:"trucks_maintenance"`
}

// GetSummary computes the report summary, serving from cache when fresh.
// Revenue counts only completed hauls, using the final price when
// settled and the quote otherwise.
func (s *ReportService) GetSummary(ctx context.Context) (*ReportSummary, error) {
	if s.cacheStore != nil {
		if data, err := s.cacheStore.GetReportSummary(ctx); err == nil && data != nil {
			var cached ReportSummary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	hauls, err := s.haulRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	trucks, err := s.truckRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := buildSummary(hauls, trucks)

	if s.cacheStore != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = s.cacheStore.SetReportSummary(ctx, data)
		}
	}

	return summary, nil
}

func buildSummary(hauls []*domain.Haul, trucks []*domain.Truck) *ReportSummary {
	summary := &ReportSummary{TotalHauls: len(hauls)}

	for _, haul := range hauls {
		switch haul.Status {
		case domain.HaulStatusPending:
			summary.PendingHauls++
		case domain.HaulStatusAssigned:
			summary.AssignedHauls++
		case domain.HaulStatusInProgress:
			summary.InProgressHauls++
		case domain.HaulStatusCompleted:
			summary.CompletedHauls++
			summary.TotalRevenue += haul.Revenue()
		case domain.HaulStatusCancelled:
			summary.CancelledHauls++
		}

		if haul.DistanceMiles != nil {
			summary.TotalDistance += *haul.DistanceMiles
		}
	}

	if summary.CompletedHauls > 0 {
		summary.AverageRevenue = summary.TotalRevenue / float64(summary.CompletedHauls)
	}
	if summary.TotalHauls > 0 {
		summary.AverageDistance = summary.TotalDistance / float64(summary.TotalHauls)
	}

	for _, truck := range trucks {
		switch truck.Status {
		case domain.TruckStatusAvailable:
			summary.TrucksAvailable++
		case domain.TruckStatusInUse:
			summary.TrucksInUse++
		case domain.TruckStatusMaintenance:
			summary.TrucksMaintenance++
		}
	}

	return summary
}
