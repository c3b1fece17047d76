package logbook

import (
	"database/sql"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"

	handler "github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/handler/http"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/handler/subscriber"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/database/postgres"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/publisher/rabbitmq"
	settingsredis "github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/settings/redis"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/scanning"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/service"
)

type Module struct {
	VehicleSvc  *service.VehicleService
	DriverSvc   *service.DriverService
	TripSvc     *service.TripService
	FuelSvc     *service.FuelService
	CostSvc     *service.CostService
	SettingsSvc *service.SettingsService
	StatsSvc    *service.StatisticsService
	PositionSvc *service.PositionService
	Tracking    *service.AutoTrackManager

	recognizer scanning.Recognizer
	handlers   []routeRegistrar
	subscriber *subscriber.PositionSubscriber
}

type routeRegistrar interface {
	Register(r *gin.RouterGroup)
}

// Build wires the repositories, services and handlers. The OCR service
// address and language come from configuration; an empty address
// disables receipt scanning.
func Build(db *sql.DB, redisClient *goredis.Client, amqpConn *amqp.Connection, mqttClient mqtt.Client, ocrURL, ocrLanguage string, logger *slog.Logger) (*Module, error) {
	vehicleRepo := postgres.NewVehicleRepo(db)
	driverRepo := postgres.NewDriverRepo(db)
	tripRepo := postgres.NewTripRepo(db)
	fuelRepo := postgres.NewFuelRepo(db)
	costRepo := postgres.NewCostRepo(db)
	positionRepo := postgres.NewPositionRepo(db)
	settingsRepo := settingsredis.NewSettingsRepo(redisClient)

	eventPub, err := rabbitmq.NewTripEventPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("trip event publisher: %w", err)
	}

	var recognizer scanning.Recognizer
	if ocrURL != "" {
		recognizer = scanning.NewHTTPRecognizer(ocrURL, ocrLanguage)
	}

	vehicleSvc := service.NewVehicleService(vehicleRepo)
	driverSvc := service.NewDriverService(driverRepo)
	tripSvc := service.NewTripService(tripRepo, eventPub, logger)
	fuelSvc := service.NewFuelService(fuelRepo, recognizer, logger)
	costSvc := service.NewCostService(costRepo)
	settingsSvc := service.NewSettingsService(settingsRepo, logger)
	statsSvc := service.NewStatisticsService(tripRepo, fuelRepo, costRepo)
	positionSvc := service.NewPositionService(positionRepo)

	tracking := service.NewAutoTrackManager(tripSvc, vehicleSvc, settingsSvc, eventPub, mqttClient, logger)
	settingsSvc.SetRefresher(tracking)

	sub := subscriber.NewPositionSubscriber(mqttClient, positionSvc, tracking, logger)

	return &Module{
		VehicleSvc:  vehicleSvc,
		DriverSvc:   driverSvc,
		TripSvc:     tripSvc,
		FuelSvc:     fuelSvc,
		CostSvc:     costSvc,
		SettingsSvc: settingsSvc,
		StatsSvc:    statsSvc,
		PositionSvc: positionSvc,
		Tracking:    tracking,
		recognizer:  recognizer,
		handlers: []routeRegistrar{
			handler.NewVehicleHandler(vehicleSvc),
			handler.NewDriverHandler(driverSvc),
			handler.NewTripHandler(tripSvc),
			handler.NewFuelHandler(fuelSvc),
			handler.NewCostHandler(costSvc),
			handler.NewSettingsHandler(settingsSvc),
			handler.NewStatisticsHandler(statsSvc),
			handler.NewPositionHandler(positionSvc),
		},
		subscriber: sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	r.Use(handler.RequireUser())
	for _, h := range m.handlers {
		h.Register(r)
	}
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

func (m *Module) Close() error {
	m.Tracking.StopAll()
	if m.recognizer != nil {
		return m.recognizer.Close()
	}
	return nil
}
