package repositories

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"tandem-server/configs"
	"tandem-server/internal/loggers"
	"tandem-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type dbs struct {
	Redis    *redis.Client
	Postgres *gorm.DB
}

// Singleton 패턴으로 한번만 초기화
var DBS dbs

func Init() {
	initRedis()
	initPostgres()
}

// redisOptions converts the Redis config section into client options.
// 주소 목록이 비어 있으면 설정 오류로 처리
func redisOptions(cfg configs.RedisConfig) (*redis.Options, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("redis addresses must not be empty")
	}

	opt := &redis.Options{
		Addr:     cfg.Addresses[0],
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	}

	// TLS가 true이면 TLSConfig 설정
	if cfg.Tls {
		opt.TLSConfig = &tls.Config{}
	}

	return opt, nil
}

// initRedis initializes the Redis connection
func initRedis() {
	opt, err := redisOptions(configs.Configs.Redis)
	if err != nil {
		configs.Logger.Fatal("Invalid Redis configuration", zap.Error(err))
		return
	}

	DBS.Redis = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := DBS.Redis.Ping(ctx).Result()
	if err != nil {
		configs.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		return
	}

	configs.Logger.Info("Redis connected successfully", zap.String("result", result))
}

// initPostgres initializes the PostgreSQL connection
func initPostgres() {
	host, port, err := net.SplitHostPort(configs.Configs.Postgres.Address)
	if err != nil {
		configs.Logger.Fatal("Invalid Postgres address", zap.Error(err))
		return
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s",
		host,
		configs.Configs.Postgres.Username,
		configs.Configs.Postgres.Password,
		configs.Configs.Postgres.Database,
		port,
	)

	gormLogger := loggers.NewZapGormLogger(
		gormlogger.Info,
		200*time.Millisecond, // SlowThreshold
		true,                 // IgnoreRecordNotFoundError
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		// 유니크 제약 위반 등을 gorm.ErrDuplicatedKey로 변환
		TranslateError: true,
	})
	if err != nil {
		configs.Logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		return
	}

	// 자동 마이그레이션 실행
	if err := AutoMigrateInOrder(db); err != nil {
		panic("Failed to migrate database")
	}

	DBS.Postgres = db
	configs.Logger.Info("PostgreSQL connected successfully")
}

// AutoMigrateInOrder migrates models in dependency order (referenced tables first).
func AutoMigrateInOrder(db *gorm.DB) error {
	modelsInOrder := []interface{}{
		&models.User{},
		&models.Workspace{},
		&models.Membership{},
		&models.Channel{},
		&models.Invitation{},
	}

	for _, model := range modelsInOrder {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}
	return nil
}
