package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tablebooker/restaurant-reservation/internal/booking"
	"github.com/tablebooker/restaurant-reservation/internal/config"
	"github.com/tablebooker/restaurant-reservation/internal/database"
	"github.com/tablebooker/restaurant-reservation/internal/handler"
	appmw "github.com/tablebooker/restaurant-reservation/internal/middleware"
	"github.com/tablebooker/restaurant-reservation/internal/queue"
	"github.com/tablebooker/restaurant-reservation/internal/repository"
	"github.com/tablebooker/restaurant-reservation/internal/router"
	queuepublisher "github.com/tablebooker/restaurant-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	cfg := config.Load()
	tz := cfg.Location()

	// MySQL holds the accounts and refresh tokens.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	// Redis is the reservation item store; without it there is no booking.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: cannot connect")
	}
	defer rdb.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	engine := booking.NewEngine(
		repository.NewReservationRepo(rdb),
		repository.NewLocationRepo(rdb),
		repository.NewTableRepo(rdb),
		repository.NewWaiterRepo(rdb),
		users,
		queuepublisher.NewSink(),
		func() time.Time { return time.Now().In(tz) },
	)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(engine)
	reservationH := handler.NewReservationHandler(engine)
	waiterH := handler.NewWaiterHandler(engine)

	e := echo.New()
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterRoutes(e, bookingH)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, bookingH, reservationH, waiterH, cfg.JWTSecret)

	// Event consumer tails reservation.events into logs/reservations.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.TimeZone)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
