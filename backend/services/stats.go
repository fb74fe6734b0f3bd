package services

import (
	"log"
	"math"
	"time"

	"lms/backend/models"
	"lms/backend/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Read-side aggregations over the content hierarchy and completion records.
// Everything is recomputed per call; these are dashboard reads, not hot
// paths. Rate computations always check the denominator and default to 0.

// ProgressRate returns a user's completion percentage over all contents.
func ProgressRate(db *gorm.DB, userID uuid.UUID) (int, error) {
	var totalContents int64
	if err := db.Model(&models.Content{}).Count(&totalContents).Error; err != nil {
		return 0, statsErr("counting contents", err)
	}
	if totalContents == 0 {
		return 0, nil
	}

	var completed int64
	err := db.Model(&models.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completed).Error
	if err != nil {
		return 0, statsErr("counting completions", err)
	}

	return roundRate(completed, totalContents), nil
}

// ProgressRates batches ProgressRate for many users: one content count and
// one grouped completion query instead of a query per user.
func ProgressRates(db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	rates := make(map[uuid.UUID]int, len(userIDs))
	for _, id := range userIDs {
		rates[id] = 0
	}
	if len(userIDs) == 0 {
		return rates, nil
	}

	var totalContents int64
	if err := db.Model(&models.Content{}).Count(&totalContents).Error; err != nil {
		return nil, statsErr("counting contents", err)
	}
	if totalContents == 0 {
		return rates, nil
	}

	completedCounts, err := completedCountsByUser(db, userIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range userIDs {
		rates[id] = roundRate(completedCounts[id], totalContents)
	}
	return rates, nil
}

// DashboardStats composes the instructor dashboard numbers; the independent
// branches are fetched concurrently and joined.
func DashboardStats(db *gorm.DB) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var g errgroup.Group

	g.Go(func() error {
		total, approved, pending, active, err := studentCounts(db)
		if err != nil {
			return err
		}
		stats.TotalStudents = total
		stats.ApprovedStudents = approved
		stats.PendingStudents = pending
		stats.ActiveStudents = active
		return nil
	})

	g.Go(func() error {
		total, pending, reviewed, err := submissionCounts(db)
		if err != nil {
			return err
		}
		stats.TotalSubmissions = total
		stats.PendingSubmissions = pending
		stats.ReviewedSubmissions = reviewed
		return nil
	})

	g.Go(func() error {
		average, completed, err := approvedProgressStats(db)
		if err != nil {
			return err
		}
		stats.AverageProgress = average
		stats.TotalCompletedContents = completed
		return nil
	})

	g.Go(func() error {
		return db.Model(&models.Content{}).Count(&stats.TotalContents).Error
	})

	g.Go(func() error {
		return db.Model(&models.Announcement{}).Count(&stats.TotalAnnouncements).Error
	})

	if err := g.Wait(); err != nil {
		return nil, statsErr("building dashboard stats", err)
	}
	return &stats, nil
}

func studentCounts(db *gorm.DB) (total, approved, pending, active int64, err error) {
	students := func() *gorm.DB {
		return db.Model(&models.Profile{}).Where("role = ?", models.RoleStudent)
	}

	if err = students().Count(&total).Error; err != nil {
		return
	}
	if err = students().Where("approved = ?", true).Count(&approved).Error; err != nil {
		return
	}
	if err = students().Where("approved = ?", false).Count(&pending).Error; err != nil {
		return
	}

	// Active: distinct users with a completion within the last 7 days.
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	err = db.Model(&models.UserProgress{}).
		Where("completed = ? AND completed_at >= ?", true, sevenDaysAgo).
		Distinct("user_id").
		Count(&active).Error
	return
}

func submissionCounts(db *gorm.DB) (total, pending, reviewed int64, err error) {
	if err = db.Model(&models.Submission{}).Count(&total).Error; err != nil {
		return
	}
	if err = db.Model(&models.Submission{}).Where("feedback IS NULL").Count(&pending).Error; err != nil {
		return
	}
	err = db.Model(&models.Submission{}).Where("feedback IS NOT NULL").Count(&reviewed).Error
	return
}

// approvedProgressStats computes the dashboard average: completions across
// approved students over (students x contents).
func approvedProgressStats(db *gorm.DB) (average int, completed int64, err error) {
	studentIDs, err := approvedStudentIDs(db)
	if err != nil || len(studentIDs) == 0 {
		return 0, 0, err
	}

	var totalContents int64
	if err = db.Model(&models.Content{}).Count(&totalContents).Error; err != nil {
		return 0, 0, err
	}
	if totalContents == 0 {
		return 0, 0, nil
	}

	err = db.Model(&models.UserProgress{}).
		Where("user_id IN ? AND completed = ?", studentIDs, true).
		Count(&completed).Error
	if err != nil {
		return 0, 0, err
	}

	denominator := int64(len(studentIDs)) * totalContents
	return roundRate(completed, denominator), completed, nil
}

var distributionBands = []struct {
	Range string
	Upper float64
}{
	{"0-20%", 20},
	{"21-40%", 40},
	{"41-60%", 60},
	{"61-80%", 80},
	{"81-100%", 100},
}

// ProgressDistribution buckets approved students into five fixed bands.
// Boundary rule: a rate falls into the first band whose upper bound it does
// not exceed, in ascending order, so exactly 20 lands in "0-20%".
func ProgressDistribution(db *gorm.DB) ([]models.ProgressDistribution, error) {
	distribution := make([]models.ProgressDistribution, len(distributionBands))
	for i, band := range distributionBands {
		distribution[i] = models.ProgressDistribution{Range: band.Range}
	}

	studentIDs, err := approvedStudentIDs(db)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return distribution, nil
	}

	var totalContents int64
	if err := db.Model(&models.Content{}).Count(&totalContents).Error; err != nil {
		return nil, statsErr("counting contents", err)
	}
	if totalContents == 0 {
		return distribution, nil
	}

	completedCounts, err := completedCountsByUser(db, studentIDs)
	if err != nil {
		return nil, err
	}

	for _, studentID := range studentIDs {
		rate := float64(completedCounts[studentID]) / float64(totalContents) * 100
		for i, band := range distributionBands {
			if rate <= band.Upper {
				distribution[i].Count++
				break
			}
		}
	}

	for i := range distribution {
		distribution[i].Percentage = roundRate(int64(distribution[i].Count), int64(len(studentIDs)))
	}
	return distribution, nil
}

// SubmissionTrend counts submissions and reviewed submissions per calendar
// day for the 7 days ending today, oldest first. Days are bucketed on the
// UTC date portion of the creation timestamp.
func SubmissionTrend(db *gorm.DB) ([]models.SubmissionTrend, error) {
	today := time.Now().UTC()
	windowStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -6)

	var submissions []models.Submission
	err := db.Where("created_at >= ?", windowStart).Find(&submissions).Error
	if err != nil {
		return nil, statsErr("fetching submission trend", err)
	}

	type dayCounts struct{ submissions, reviewed int }
	byDate := make(map[string]dayCounts)
	for _, s := range submissions {
		date := s.CreatedAt.UTC().Format("2006-01-02")
		counts := byDate[date]
		counts.submissions++
		if s.Feedback != nil {
			counts.reviewed++
		}
		byDate[date] = counts
	}

	trend := make([]models.SubmissionTrend, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		counts := byDate[date]
		trend = append(trend, models.SubmissionTrend{
			Date:        date,
			Submissions: counts.submissions,
			Reviewed:    counts.reviewed,
		})
	}
	return trend, nil
}

// RecentPendingSubmissions returns the newest submissions still waiting for
// feedback, decorated with the submitter's name and the content title.
func RecentPendingSubmissions(db *gorm.DB, limit int) ([]models.PendingSubmissionDigest, error) {
	if limit <= 0 {
		limit = 5
	}

	var submissions []models.Submission
	err := db.Where("feedback IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, statsErr("fetching pending submissions", err)
	}
	if len(submissions) == 0 {
		return []models.PendingSubmissionDigest{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(submissions))
	contentIDs := make([]uuid.UUID, 0, len(submissions))
	for _, s := range submissions {
		userIDs = append(userIDs, s.UserID)
		contentIDs = append(contentIDs, s.ContentID)
	}

	var profiles []models.Profile
	if err := db.Where("id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, statsErr("fetching submitters", err)
	}
	var contents []models.Content
	if err := db.Where("id IN ?", contentIDs).Find(&contents).Error; err != nil {
		return nil, statsErr("fetching contents", err)
	}

	names := make(map[uuid.UUID]string, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.DisplayName()
	}
	titles := make(map[uuid.UUID]string, len(contents))
	for _, c := range contents {
		titles[c.ID] = c.Title
	}

	digest := make([]models.PendingSubmissionDigest, 0, len(submissions))
	for _, s := range submissions {
		name, ok := names[s.UserID]
		if !ok {
			name = "不明なユーザー"
		}
		title, ok := titles[s.ContentID]
		if !ok {
			title = "不明なコンテンツ"
		}
		digest = append(digest, models.PendingSubmissionDigest{
			ID:           s.ID.String(),
			UserName:     name,
			ContentTitle: title,
			CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return digest, nil
}

// OverallProgressStats summarizes completions across approved students:
// mean of per-student rates, total completions, and distinct active users.
func OverallProgressStats(db *gorm.DB) (*models.OverallProgressStats, error) {
	stats := &models.OverallProgressStats{}

	studentIDs, err := approvedStudentIDs(db)
	if err != nil {
		return nil, err
	}
	if len(studentIDs) == 0 {
		return stats, nil
	}

	var totalContents int64
	if err := db.Model(&models.Content{}).Count(&totalContents).Error; err != nil {
		return nil, statsErr("counting contents", err)
	}
	if totalContents == 0 {
		return stats, nil
	}

	completedCounts, err := completedCountsByUser(db, studentIDs)
	if err != nil {
		return nil, err
	}

	totalRate := 0
	for _, studentID := range studentIDs {
		completed := completedCounts[studentID]
		stats.TotalCompletions += completed
		if completed > 0 {
			stats.ActiveUsers++
		}
		totalRate += roundRate(completed, totalContents)
	}
	stats.AverageProgress = int(math.Round(float64(totalRate) / float64(len(studentIDs))))

	return stats, nil
}

func approvedStudentIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&models.Profile{}).
		Where("role = ? AND approved = ?", models.RoleStudent, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, statsErr("fetching approved students", err)
	}
	return ids, nil
}

// completedCountsByUser groups completed progress rows by user in a single
// query.
func completedCountsByUser(db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		UserID uuid.UUID
		Count  int64
	}
	err := db.Model(&models.UserProgress{}).
		Select("user_id, COUNT(*) AS count").
		Where("user_id IN ? AND completed = ?", userIDs, true).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, statsErr("counting completions", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func roundRate(numerator, denominator int64) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

func statsErr(operation string, err error) error {
	log.Printf("[ERROR] %s: %s", operation, utils.SanitizeForLog(err.Error()))
	return errPersistence("統計情報の取得に失敗しました")
}
