package cron

import log "log/slog"

func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("定时任务已启动", "jobs", len(mgr.engine.Entries()))
	return nil
}
