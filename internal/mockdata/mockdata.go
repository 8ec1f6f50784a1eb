// Package mockdata holds the reference data a station is provisioned with
// when no real backend is configured: workflows, the two station accounts,
// the material and container catalog, staging areas, WIP inventory and the
// initial request and approval ledgers.
package mockdata

import (
	"time"

	"station-request-api-server/internal/models"
	"station-request-api-server/internal/staging"
)

func Workflows() []models.Workflow {
	return []models.Workflow{
		{ID: "wf-01", Name: "Assembly Line A", AssignmentStrategy: models.AssignmentRequestBased, ConfirmationMode: models.ConfirmationAuto},
		{ID: "wf-02", Name: "QC Station B", AssignmentStrategy: models.AssignmentOnRoute, ConfirmationMode: models.ConfirmationManual},
		{ID: "wf-03", Name: "Production C", AssignmentStrategy: models.AssignmentRequestBased, ConfirmationMode: models.ConfirmationAuto},
	}
}

func RequesterUser() models.Identity {
	return models.Identity{
		ID:             "dev-001",
		Username:       "Arjun",
		StationID:      "Station 001",
		StationCode:    "PR 001",
		StationName:    "Assembly Line A – Requester",
		DeviceName:     "YOHT-123",
		Role:           models.RoleRequester,
		Workflows:      Workflows(),
		StagingAreaIDs: []string{"sa-01", "sa-02"},
	}
}

func ApproverUser() models.Identity {
	return models.Identity{
		ID:             "dev-002",
		Username:       "Meera",
		StationID:      "Station 002",
		StationCode:    "AP 001",
		StationName:    "Material Store – Approver",
		DeviceName:     "YOHT-456",
		Role:           models.RoleApprover,
		Workflows:      Workflows(),
		StagingAreaIDs: []string{},
	}
}

func Materials() []models.MaterialSKU {
	return []models.MaterialSKU{
		{ID: "sku-01", Name: "Widget A", Code: "WGT-A", SubSKUTypes: []models.SubSKUType{
			{ID: "sst-01", Name: "Sub-SKU Type 1", Code: "WGT-A-T1", Available: 12, Reserved: 3, MaxQty: 5, Active: true},
			{ID: "sst-02", Name: "Sub-SKU Type 2", Code: "WGT-A-T2", Available: 0, Reserved: 0, MaxQty: 5, Active: true},
			{ID: "sst-03", Name: "Sub-SKU Type 3", Code: "WGT-A-T3", Available: 0, Reserved: 0, MaxQty: 3, Active: true, InPreProcessing: true},
		}},
		{ID: "sku-02", Name: "Bracket B", Code: "BKT-B", SubSKUTypes: []models.SubSKUType{
			{ID: "sst-04", Name: "Sub-SKU Type 1", Code: "BKT-B-T1", Available: 20, Reserved: 5, MaxQty: 10, Active: true},
			{ID: "sst-05", Name: "Sub-SKU Type 2", Code: "BKT-B-T2", Available: 4, Reserved: 0, MaxQty: 4, Active: true, InPreProcessing: true},
		}},
		{ID: "sku-03", Name: "Panel C", Code: "PNL-C", SubSKUTypes: []models.SubSKUType{
			{ID: "sst-06", Name: "Sub-SKU Type 1", Code: "PNL-C-T1", Available: 0, Reserved: 2, MaxQty: 6, Active: true},
			{ID: "sst-07", Name: "Sub-SKU Type 2", Code: "PNL-C-T2", Available: 6, Reserved: 0, MaxQty: 6, Active: true},
			{ID: "sst-08", Name: "Sub-SKU Type 3", Code: "PNL-C-T3", Available: 3, Reserved: 1, MaxQty: 3, Active: true},
		}},
		{ID: "sku-04", Name: "Axle D", Code: "AXL-D", SubSKUTypes: []models.SubSKUType{
			{ID: "sst-09", Name: "Sub-SKU Type 1", Code: "AXL-D-T1", Available: 7, Reserved: 0, MaxQty: 5, Active: true},
		}},
	}
}

func Containers() []models.Container {
	return []models.Container{
		{ID: "con-01", Type: models.ContainerTrolley, Subtypes: []models.ContainerSubtype{
			{ID: "cst-01", Name: "Heavy Trolley", Available: 8},
			{ID: "cst-02", Name: "Light Trolley", Available: 15},
			{ID: "cst-03", Name: "Flat Trolley", Available: 3},
		}},
		{ID: "con-02", Type: models.ContainerPallet, Subtypes: []models.ContainerSubtype{
			{ID: "cst-04", Name: "Standard Pallet", Available: 20},
			{ID: "cst-05", Name: "Euro Pallet", Available: 10},
		}},
		{ID: "con-03", Type: models.ContainerBin, Subtypes: []models.ContainerSubtype{
			{ID: "cst-06", Name: "Small Bin", Available: 30},
			{ID: "cst-07", Name: "Large Bin", Available: 12},
		}},
	}
}

func StagingAreas() []models.StagingArea {
	return []models.StagingArea{
		{ID: "sa-01", Name: "SA 001", Rows: 40, Cols: 5, Cells: staging.BuildCells(40, 5)},
		{ID: "sa-02", Name: "SA 002", Rows: 40, Cols: 5, Cells: staging.BuildCells(40, 5)},
	}
}

func Inventory() []models.InventoryRow {
	return []models.InventoryRow{
		{SKU: "Widget A", SubSKUType: "Type 1", Produced: 50, PreProcessing: 5, Available: 12, Reserved: 3, InTransit: 2, Consumed: 28, Total: 50},
		{SKU: "Widget A", SubSKUType: "Type 2", Produced: 30, PreProcessing: 0, Available: 0, Reserved: 0, InTransit: 0, Consumed: 30, Total: 30},
		{SKU: "Widget A", SubSKUType: "Type 3", Produced: 40, PreProcessing: 2, Available: 8, Reserved: 1, InTransit: 0, Consumed: 29, Total: 40},
		{SKU: "Bracket B", SubSKUType: "Type 1", Produced: 80, PreProcessing: 0, Available: 20, Reserved: 5, InTransit: 3, Consumed: 52, Total: 80},
		{SKU: "Bracket B", SubSKUType: "Type 2", Produced: 25, PreProcessing: 1, Available: 4, Reserved: 0, InTransit: 0, Consumed: 20, Total: 25},
		{SKU: "Panel C", SubSKUType: "Type 1", Produced: 60, PreProcessing: 3, Available: 0, Reserved: 2, InTransit: 1, Consumed: 54, Total: 60},
		{SKU: "Panel C", SubSKUType: "Type 2", Produced: 45, PreProcessing: 0, Available: 6, Reserved: 0, InTransit: 0, Consumed: 39, Total: 45},
		{SKU: "Axle D", SubSKUType: "Type 1", Produced: 35, PreProcessing: 0, Available: 7, Reserved: 0, InTransit: 0, Consumed: 28, Total: 35},
	}
}

// Requests is the initial request ledger; times are offsets from today's
// midnight in now's location.
func Requests(now time.Time) []models.Request {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	return []models.Request{
		{ID: "Req-001", Type: models.RequestMaterial, Status: models.StatusInProgress, CreatedAt: at(15, 0), Items: "SKU 7765", Workflow: "Assembly Line A", WorkflowID: "wf-01"},
		{ID: "Req-002", Type: models.RequestContainer, Status: models.StatusFailed, CreatedAt: at(15, 0), Items: "Leaf Container", Workflow: "Assembly Line A", WorkflowID: "wf-01"},
		{ID: "Req-003", Type: models.RequestMaterial, Status: models.StatusCompleted, CreatedAt: at(14, 30), Items: "Widget A – T1", Workflow: "Assembly Line A", WorkflowID: "wf-01"},
		{ID: "Req-004", Type: models.RequestMaterial, Status: models.StatusPending, CreatedAt: at(14, 0), Items: "Bracket B – T1", Workflow: "Assembly Line A", WorkflowID: "wf-01"},
		{ID: "Req-005", Type: models.RequestContainer, Status: models.StatusAwaitingConfirmation, CreatedAt: at(13, 45), Items: "Heavy Trolley", Workflow: "Assembly Line A", WorkflowID: "wf-01"},
		{ID: "Req-006", Type: models.RequestMaterial, Status: models.StatusCompleted, CreatedAt: at(13, 0), Items: "Panel C – T2", Workflow: "Assembly Line A", WorkflowID: "wf-01"},
		{ID: "Req-007", Type: models.RequestMaterial, Status: models.StatusFailed, CreatedAt: at(12, 30), Items: "Axle D – T1", Workflow: "QC Station B", WorkflowID: "wf-02"},
		{ID: "Req-008", Type: models.RequestReturnTrolley, Status: models.StatusBreakdown, CreatedAt: at(11, 15), Items: "Flat Trolley", Workflow: "QC Station B", WorkflowID: "wf-02"},
	}
}

func ApprovalRequests(now time.Time) []models.ApprovalRequest {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	return []models.ApprovalRequest{
		{ID: "APR-001", FromStation: "Station 001", Items: "Widget A – T1", Quantity: 4, RequestType: "Material", RequestTime: at(15, 10), InventoryCount: 12, InventoryStatus: models.InventoryAvailable, Workflow: "Assembly Line A", Status: models.ApprovalPending},
		{ID: "APR-002", FromStation: "Station 003", Items: "Bracket B – T2", Quantity: 4, RequestType: "Material", RequestTime: at(14, 50), InventoryCount: 4, InventoryStatus: models.InventoryFinishingSoon, Workflow: "QC Station B", Status: models.ApprovalPending},
		{ID: "APR-003", FromStation: "Station 001", Items: "Panel C – T1", Quantity: 2, RequestType: "Material", RequestTime: at(14, 20), InventoryCount: 0, InventoryStatus: models.InventoryOutOfStock, Workflow: "Assembly Line A", Status: models.ApprovalPending},
		{ID: "APR-004", FromStation: "Station 004", Items: "Heavy Trolley", Quantity: 1, RequestType: "Container", RequestTime: at(13, 40), InventoryCount: 8, InventoryStatus: models.InventoryAvailable, Workflow: "Production C", Status: models.ApprovalPending},
		{ID: "APR-005", FromStation: "Station 002", Items: "Axle D – T1", Quantity: 5, RequestType: "Material", RequestTime: at(12, 5), InventoryCount: 7, InventoryStatus: models.InventoryAvailable, Workflow: "Production C", Status: models.ApprovalApproved},
		{ID: "APR-006", FromStation: "Station 003", Items: "Widget A – T2", Quantity: 3, RequestType: "Material", RequestTime: at(11, 30), InventoryCount: 0, InventoryStatus: models.InventoryOutOfStock, Workflow: "QC Station B", Status: models.ApprovalRejected},
	}
}
