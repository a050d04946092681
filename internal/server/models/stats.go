package models

type DashboardStats struct {
	TotalJobSeekers      int `json:"totalUsers"`
	TotalRecruiters      int `json:"totalRecruiters"`
	TotalJobs            int `json:"totalJobs"`
	ActiveJobs           int `json:"activeJobs"`
	TotalApplications    int `json:"totalApplications"`
	PendingVerifications int `json:"pendingVerifications"`
}
