package dto

// DashboardResponse сводка по парку девайсов.
type DashboardResponse struct {
	Devices        []DeviceResponse `json:"devices"`
	TotalDevices   int              `json:"total_devices"`
	CountsByStatus map[string]int   `json:"counts_by_status"`
}
