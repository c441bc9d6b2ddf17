// Package jobs provides scheduled background tasks for the courier client.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations of a live courier session.
//
// # Available Jobs
//
// 1. LocationReportJob - Runs every fifteen seconds to sample the location source
// and record the courier's position
// 2. LedgerRolloverJob - Runs at midnight to zero the today earnings bucket
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(locationSource, reportLocationHandler, rolloverLedgerHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Location report failures are logged and skipped; the next sample recovers
// - Rollover failures are logged; the ledger is corrected on the next boundary
// - Failed job starts will stop any already running jobs
package jobs
