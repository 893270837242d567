package config

import (
	"tillpoint/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"dailysummary": {Schedule: "10 0 * * *", Job: jobs.DailySummaryJob},
	"cachewarm":    {Schedule: "@every 15m", Job: jobs.CacheWarmJob},
	// Add more jobs here
}
