package admin

// GradeCount is one bucket of the staff distribution. It always reflects the
// real grade assignments, visible grades play no part in it.
type GradeCount struct {
	GradeID   int64  `json:"grade_id"`
	GradeName string `json:"grade_name"`
	Level     int    `json:"level"`
	UserCount int64  `json:"user_count"`
}

type Stats struct {
	TotalUsers        int64         `json:"total_users"`
	ActiveUsers       int64         `json:"active_users"`
	TotalPatients     int64         `json:"total_patients"`
	TotalReports      int64         `json:"total_reports"`
	TotalAppointments int64         `json:"total_appointments"`
	PendingIntake     int64         `json:"pending_intake"`
	GradeDistribution []*GradeCount `json:"grade_distribution"`
}
