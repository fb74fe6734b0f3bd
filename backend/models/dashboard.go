package models

// Read-side summary structures produced by the statistics layer.

type DashboardStats struct {
	TotalStudents    int64 `json:"total_students"`
	ApprovedStudents int64 `json:"approved_students"`
	PendingStudents  int64 `json:"pending_students"`
	ActiveStudents   int64 `json:"active_students"`

	TotalSubmissions    int64 `json:"total_submissions"`
	PendingSubmissions  int64 `json:"pending_submissions"`
	ReviewedSubmissions int64 `json:"reviewed_submissions"`

	AverageProgress        int   `json:"average_progress"`
	TotalContents          int64 `json:"total_contents"`
	TotalCompletedContents int64 `json:"total_completed_contents"`

	TotalAnnouncements int64 `json:"total_announcements"`
}

type ProgressDistribution struct {
	Range      string `json:"range"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type SubmissionTrend struct {
	Date        string `json:"date"`
	Submissions int    `json:"submissions"`
	Reviewed    int    `json:"reviewed"`
}

type PendingSubmissionDigest struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	ContentTitle string `json:"content_title"`
	CreatedAt    string `json:"created_at"`
}

type OverallProgressStats struct {
	AverageProgress  int   `json:"average_progress"`
	TotalCompletions int64 `json:"total_completions"`
	ActiveUsers      int   `json:"active_users"`
}
