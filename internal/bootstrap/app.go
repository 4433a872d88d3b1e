package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/configs"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/cache"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/gateway"
	apihttp "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/http"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/http/middleware"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/kafka"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/queue"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/repo"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/logging"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

type App struct {
	Router *gin.Engine
	// StartConsumers begins the Kafka stock listener; blocks until ctx ends.
	StartConsumers func(ctx context.Context) error
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.New("bootstrap")

	// mysql
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	// rabbitmq (optional: the engine works without event fan-out)
	var events usecase.EventPublisher
	var rabbitConn *amqp091.Connection
	if cfg.Rabbit.URL != "" {
		conn, err := amqp091.Dial(cfg.Rabbit.URL)
		if err != nil {
			log.Error("rabbitmq dial failed, events disabled", "error", err)
		} else {
			rabbitConn = conn
			ch, err := conn.Channel()
			if err != nil {
				log.Error("rabbitmq channel open failed, events disabled", "error", err)
			} else if producer, err := queue.NewRabbitProducer(ch); err != nil {
				log.Error("rabbitmq producer setup failed, events disabled", "error", err)
			} else {
				events = producer
			}
		}
	}

	// adapters
	catalog := repo.NewMySQLCatalogRepo(db)
	carts := cache.NewRedisCartStore(rdb, cfg.Redis.CartTTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	fees := gateway.NewFeeClient(cfg.Collaborators.FeeBaseURL, cfg.Collaborators.Timeout)
	postal := gateway.NewPostalClient(cfg.Collaborators.PostalBaseURL, cfg.Collaborators.Timeout)
	orders := gateway.NewOrderClient(cfg.Collaborators.OrderBaseURL, cfg.Collaborators.Timeout)

	// core
	defaults := usecase.SchedulingDefaults{
		DeliveryBufferMin: cfg.Scheduling.DeliveryBufferMin,
		PickupBufferMin:   cfg.Scheduling.PickupBufferMin,
	}
	cartSvc := usecase.NewCartService(carts, catalog)
	resolver := usecase.NewFeeResolver(fees, postal, cfg.Collaborators.Timeout)
	slots := usecase.NewSlotGenerator(cfg.Scheduling.GranularityMinutes)
	assembler := usecase.NewAssembler(cartSvc, catalog, resolver, orders, events, idem, defaults)

	// http
	cartH := apihttp.NewCartHandler(cartSvc)
	storeH := apihttp.NewStorefrontHandler(catalog, slots, resolver, defaults)
	checkoutH := apihttp.NewCheckoutHandler(assembler)
	tokenH := apihttp.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := apihttp.NewRouter(cartH, storeH, checkoutH, tokenH, authz)

	// kafka stock listener
	startConsumers := func(ctx context.Context) error {
		if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.TopicStock == "" {
			<-ctx.Done()
			return ctx.Err()
		}
		group, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
		if err != nil {
			return err
		}
		defer group.Close()
		handler := kafka.NewStockChangedHandler(catalog)
		consumer := kafka.NewConsumer(group, []string{cfg.Kafka.TopicStock}, handler.Handle)
		consumer.Logger = logging.New("kafka")
		return consumer.Start(ctx)
	}

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		if rabbitConn != nil {
			_ = rabbitConn.Close()
		}
	}

	return &App{Router: router, StartConsumers: startConsumers}, cleanup, nil
}
