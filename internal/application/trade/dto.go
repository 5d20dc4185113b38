package trade

import (
	"github.com/erp/console/internal/application/snapshot"
	"github.com/erp/console/internal/domain/report"
	"github.com/erp/console/internal/domain/trade"
)

// OrderListResponse is the order list with its status breakdown
type OrderListResponse struct {
	Orders    []trade.Order        `json:"orders"`
	Breakdown []report.StatusCount `json:"breakdown"`
	Meta      snapshot.Meta        `json:"-"`
}

// TrackingInfoResponse is the tracking summary of one order
type TrackingInfoResponse struct {
	Info trade.TrackingInfo `json:"info"`
	Meta snapshot.Meta      `json:"-"`
}

// UpdateStatusRequest carries the ?status= of a status update
type UpdateStatusRequest struct {
	Status string `form:"status" binding:"required"`
}
