package models

// AdminStats aggregates entity counts for the admin dashboard.
type AdminStats struct {
	Users          int `json:"users"`
	Admins         int `json:"admins"`
	Organizers     int `json:"organizers"`
	Events         int `json:"events"`
	UpcomingEvents int `json:"upcomingEvents"`
	RSVPs          int `json:"rsvps"`
	Notifications  int `json:"notifications"`
}

// HostStats is a snapshot of server resource usage, included in admin stats.
type HostStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsedMB  uint64  `json:"memoryUsedMb"`
	MemoryTotalMB uint64  `json:"memoryTotalMb"`
}
