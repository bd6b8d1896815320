package wire

import (
	"Trellis/internal/api"
	"Trellis/internal/api/config"
	"Trellis/internal/api/handler"
	"Trellis/internal/cache"
	"Trellis/internal/job"
	"Trellis/internal/pkg/cron"
	"Trellis/internal/pkg/kafka"
	"Trellis/internal/pkg/redis"
	"Trellis/internal/repository"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	contentRepo := repository.NewContentRepo(db)
	reactionRepo := repository.NewReactionRepo(db)
	tagRepo := repository.NewTagRepository(db)
	groupRepo := repository.NewGroupRepo(db)
	userRepo := repository.NewUserRepo(db)

	countCache := cache.NewReactionCountCache(redis.GetRdbClient())

	eventProducer, err := kafka.NewEventProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	groupProvider := service.NewGroupProvider(groupRepo)
	userProvider := service.NewUserProvider(userRepo)
	authority := service.NewContentAuthority()

	contentService := service.NewContentService(contentRepo, tagRepo, groupProvider, authority, eventProducer)
	reactionService := service.NewReactionService(reactionRepo, contentRepo, userProvider, countCache, eventProducer)
	countService := service.NewReactionCountService(reactionRepo, countCache)

	handlers := &api.HandlersGroup{
		InternalHandler: handler.NewInternalHandler(contentService, reactionService, countService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, userRepo, groupRepo)
	if err != nil {
		return nil, err
	}

	schedulePublishJob := job.NewSchedulePublishJob(contentRepo, eventProducer, cfg.Jobs.PageSize)
	reactionRecountJob := job.NewReactionRecountJob(contentRepo, reactionRepo, cfg.Jobs.PageSize)
	contentPurgeJob := job.NewContentPurgeJob(contentRepo, cfg.Jobs.PageSize, cfg.Jobs.PurgeRetentionDays)
	cronMgr := cron.NewCronManager(cfg.Jobs, schedulePublishJob, reactionRecountJob, contentPurgeJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
