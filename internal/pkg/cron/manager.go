package cron

import (
	"Trellis/internal/api/config"
	"Trellis/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine             *cron.Cron
	cfg                config.JobsConfig
	schedulePublishJob *job.SchedulePublishJob
	reactionRecountJob *job.ReactionRecountJob
	contentPurgeJob    *job.ContentPurgeJob
}

func NewCronManager(
	cfg config.JobsConfig,
	schedulePublishJob *job.SchedulePublishJob,
	reactionRecountJob *job.ReactionRecountJob,
	contentPurgeJob *job.ContentPurgeJob,
) *Manager {
	return &Manager{
		engine:             cron.New(cron.WithSeconds()),
		cfg:                cfg,
		schedulePublishJob: schedulePublishJob,
		reactionRecountJob: reactionRecountJob,
		contentPurgeJob:    contentPurgeJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cfg.SchedulePublishCron, s.schedulePublishJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.ReactionRecountCron, s.reactionRecountJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.ContentPurgeCron, s.contentPurgeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
