package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/config"
	"github.com/communitydesk/bulletin-board/internal/application"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	sessions    application.SessionStore
	cookies     *helpers.Manager
	rabbitPub   *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)                 { cfg = c }
func GetConfig() *config.Config                  { return cfg }
func SetLogger(l *logrus.Logger)                 { logger = l }
func GetLogger() *logrus.Logger                  { return logger }
func SetPGPool(p *pgxpool.Pool)                  { pgPool = p }
func GetPGPool() *pgxpool.Pool                   { return pgPool }
func SetRedis(r *redis.Client)                   { redisClient = r }
func GetRedis() *redis.Client                    { return redisClient }
func SetSessions(s application.SessionStore)     { sessions = s }
func GetSessions() application.SessionStore      { return sessions }
func SetCookies(m *helpers.Manager)              { cookies = m }
func GetCookies() *helpers.Manager               { return cookies }
func SetRabbitPub(p *helpers.RabbitPublisher)    { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher     { return rabbitPub }
