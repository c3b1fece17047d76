package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kamatt66/fahrtenbuch-pro-gps/internal/observability"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/domain"
	"github.com/kamatt66/fahrtenbuch-pro-gps/module/logbook/internal/repository/publisher"
)

const (
	// Sustained speed above autoStartSpeedKMH arms an automatic trip
	// start, sustained speed below autoStopSpeedKMH arms an automatic
	// trip end. The gap between the two keeps stop-and-go traffic from
	// flapping.
	autoStartSpeedKMH = 10.0
	autoStopSpeedKMH  = 5.0

	startTriggerDelay = 2 * time.Minute
	stopTriggerDelay  = 5 * time.Minute

	// Averaging windows. Arming decisions always look at the short
	// window; the stop recheck on timer expiry looks at the window
	// matching its delay.
	startAverageWindow = 2 * time.Minute
	stopAverageWindow  = 5 * time.Minute

	speedHistoryLimit = 10
)

const autoStopNotes = "Automatisch beendet"

// fallbackDriverName labels automatic trips when the user configured no
// default driver.
const fallbackDriverName = "Auto-Erkennung"

type monitorState int

const (
	monitorIdle monitorState = iota
	monitorStartArmed
	monitorStopArmed
)

// tripControl is the slice of the trip service the monitor drives.
type tripControl interface {
	Start(ctx context.Context, userID, driverName, vehicleID string, lat, lon *float64) (*domain.Trip, error)
	End(ctx context.Context, userID, notes string, lat, lon *float64) (*domain.Trip, error)
	Active(ctx context.Context, userID string) (*domain.Trip, error)
}

type vehicleLister interface {
	List(ctx context.Context, userID string) ([]domain.Vehicle, error)
}

type settingsSource interface {
	Get(ctx context.Context, userID string) (*domain.Settings, error)
}

// connectivityChecker reports whether the position stream is up.
// mqtt.Client satisfies it directly.
type connectivityChecker interface {
	IsConnected() bool
}

// timerFunc schedules f after d and returns a cancel function. Swapped
// for a manual scheduler in tests.
type timerFunc func(d time.Duration, f func()) func()

func realTimer(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// TrackingMonitor watches one user's position stream and starts or ends
// trips when the averaged speed crosses the thresholds for long enough.
type TrackingMonitor struct {
	userID   string
	trips    tripControl
	vehicles vehicleLister
	events   publisher.TripEventPublisher
	logger   *slog.Logger

	now   func() time.Time
	timer timerFunc

	mu       sync.Mutex
	settings domain.Settings
	state    monitorState
	cancel   func()
	history  []domain.SpeedReading
	prev     *domain.VehiclePosition
	current  float64
	stopped  bool
}

func newTrackingMonitor(userID string, settings domain.Settings, trips tripControl, vehicles vehicleLister, events publisher.TripEventPublisher, logger *slog.Logger) *TrackingMonitor {
	return &TrackingMonitor{
		userID:   userID,
		settings: settings,
		trips:    trips,
		vehicles: vehicles,
		events:   events,
		logger:   logger,
		now:      time.Now,
		timer:    realTimer,
	}
}

// Process feeds one position sample through the state machine.
func (m *TrackingMonitor) Process(ctx context.Context, pos *domain.VehiclePosition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}

	speed := m.instantSpeed(pos)
	m.prev = pos
	m.current = speed
	m.history = append(m.history, domain.SpeedReading{
		Speed:     speed,
		Timestamp: m.now(),
		Accuracy:  pos.Accuracy,
	})
	if len(m.history) > speedHistoryLimit {
		m.history = m.history[len(m.history)-speedHistoryLimit:]
	}

	avg := m.averageSpeed(startAverageWindow)

	active, err := m.trips.Active(ctx, m.userID)
	if err != nil {
		m.logger.WarnContext(ctx, "active trip lookup failed", "user_id", m.userID, "err", err)
		return
	}
	running := active != nil

	switch m.state {
	case monitorIdle:
		if !running && m.settings.AutoStartTrips && avg > autoStartSpeedKMH {
			m.arm(monitorStartArmed, startTriggerDelay, m.fireStart)
		} else if running && m.settings.AutoStopTrips && avg < autoStopSpeedKMH {
			m.arm(monitorStopArmed, stopTriggerDelay, m.fireStop)
		}
	case monitorStartArmed:
		if avg <= autoStartSpeedKMH || running || !m.settings.AutoStartTrips {
			m.disarm()
		}
	case monitorStopArmed:
		if avg >= autoStopSpeedKMH || !running || !m.settings.AutoStopTrips {
			m.disarm()
		}
	}
}

// CurrentSpeed returns the most recent instantaneous speed in km/h.
func (m *TrackingMonitor) CurrentSpeed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// UpdateSettings swaps the monitor's settings in place. A pending
// trigger whose side is no longer enabled is cancelled.
func (m *TrackingMonitor) UpdateSettings(s domain.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	if (m.state == monitorStartArmed && !s.AutoStartTrips) ||
		(m.state == monitorStopArmed && !s.AutoStopTrips) {
		m.disarm()
	}
}

// Stop tears the monitor down. No trigger fires afterwards.
func (m *TrackingMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.disarm()
	m.history = nil
	m.prev = nil
	m.current = 0
}

func (m *TrackingMonitor) arm(state monitorState, delay time.Duration, fire func()) {
	m.state = state
	m.cancel = m.timer(delay, fire)
}

func (m *TrackingMonitor) disarm() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = monitorIdle
}

func (m *TrackingMonitor) fireStart() {
	m.mu.Lock()
	if m.stopped || m.state != monitorStartArmed {
		m.mu.Unlock()
		return
	}
	m.state = monitorIdle
	m.cancel = nil
	avg := m.averageSpeed(startAverageWindow)
	lat, lon := m.lastCoords()
	m.mu.Unlock()

	if avg <= autoStartSpeedKMH {
		return
	}
	m.triggerStart(context.Background(), lat, lon)
}

func (m *TrackingMonitor) fireStop() {
	m.mu.Lock()
	if m.stopped || m.state != monitorStopArmed {
		m.mu.Unlock()
		return
	}
	m.state = monitorIdle
	m.cancel = nil
	avg := m.averageSpeed(stopAverageWindow)
	lat, lon := m.lastCoords()
	m.mu.Unlock()

	if avg >= autoStopSpeedKMH {
		return
	}
	m.triggerStop(context.Background(), lat, lon)
}

func (m *TrackingMonitor) triggerStart(ctx context.Context, lat, lon *float64) {
	driver := m.currentSettings().DefaultDriver
	if driver == "" {
		driver = fallbackDriverName
	}

	vehicleID, err := m.pickVehicle(ctx)
	if err != nil {
		m.notifyFailure(ctx, domain.AutoStartFailed, fmt.Sprintf("automatic trip start failed: %v", err))
		return
	}

	trip, err := m.trips.Start(ctx, m.userID, driver, vehicleID, lat, lon)
	if err != nil {
		m.notifyFailure(ctx, domain.AutoStartFailed, fmt.Sprintf("automatic trip start failed: %v", err))
		return
	}
	observability.AutoTripStarts.Inc()
	m.logger.InfoContext(ctx, "trip started automatically",
		"user_id", m.userID, "trip_id", trip.ID, "vehicle_id", vehicleID)
}

func (m *TrackingMonitor) triggerStop(ctx context.Context, lat, lon *float64) {
	trip, err := m.trips.End(ctx, m.userID, autoStopNotes, lat, lon)
	if err != nil {
		m.notifyFailure(ctx, domain.AutoStopFailed, fmt.Sprintf("automatic trip end failed: %v", err))
		return
	}
	observability.AutoTripStops.Inc()
	m.logger.InfoContext(ctx, "trip ended automatically",
		"user_id", m.userID, "trip_id", trip.ID)
}

// pickVehicle resolves the vehicle for an automatic trip: the
// configured default when it still exists, otherwise the first active
// vehicle.
func (m *TrackingMonitor) pickVehicle(ctx context.Context) (string, error) {
	vehicles, err := m.vehicles.List(ctx, m.userID)
	if err != nil {
		return "", fmt.Errorf("list vehicles: %w", err)
	}

	if def := m.currentSettings().DefaultVehicle; def != "" {
		for _, v := range vehicles {
			if v.ID == def {
				return v.ID, nil
			}
		}
	}
	for _, v := range vehicles {
		if v.Status == domain.VehicleActive {
			return v.ID, nil
		}
	}
	return "", fmt.Errorf("no vehicle available for automatic trip recording")
}

func (m *TrackingMonitor) notifyFailure(ctx context.Context, typ domain.TripEventType, msg string) {
	observability.AutoTripFailures.WithLabelValues(string(typ)).Inc()
	m.logger.ErrorContext(ctx, msg, "user_id", m.userID)
	if m.events == nil {
		return
	}
	ev := &domain.TripEvent{
		Type:      typ,
		UserID:    m.userID,
		Message:   msg,
		Timestamp: m.now().Unix(),
	}
	if err := m.events.Publish(ctx, ev); err != nil {
		m.logger.WarnContext(ctx, "publish tracking event failed", "type", typ, "err", err)
	}
}

func (m *TrackingMonitor) currentSettings() domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

func (m *TrackingMonitor) lastCoords() (lat, lon *float64) {
	if m.prev == nil {
		return nil, nil
	}
	la, lo := m.prev.Lat, m.prev.Lon
	return &la, &lo
}

// instantSpeed prefers the device-reported ground speed and falls back
// to deriving one from the distance to the previous sample. Called with
// the lock held.
func (m *TrackingMonitor) instantSpeed(pos *domain.VehiclePosition) float64 {
	if pos.SpeedMS != nil && *pos.SpeedMS >= 0 {
		return *pos.SpeedMS * 3.6
	}
	if m.prev == nil {
		return 0
	}
	dt := pos.Timestamp.Sub(m.prev.Timestamp).Seconds()
	if dt <= 0 {
		return 0
	}
	meters := haversineMeters(m.prev.Lat, m.prev.Lon, pos.Lat, pos.Lon)
	return meters / dt * 3.6
}

// averageSpeed averages the readings younger than the window. Called
// with the lock held.
func (m *TrackingMonitor) averageSpeed(window time.Duration) float64 {
	cutoff := m.now().Add(-window)
	var sum float64
	var n int
	for _, r := range m.history {
		if r.Timestamp.After(cutoff) {
			sum += r.Speed
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AutoTrackManager owns one TrackingMonitor per user with automatic
// tracking enabled.
type AutoTrackManager struct {
	trips    tripControl
	vehicles vehicleLister
	settings settingsSource
	events   publisher.TripEventPublisher
	source   connectivityChecker
	logger   *slog.Logger

	mu       sync.Mutex
	monitors map[string]*TrackingMonitor
}

func NewAutoTrackManager(trips tripControl, vehicles vehicleLister, settings settingsSource, events publisher.TripEventPublisher, source connectivityChecker, logger *slog.Logger) *AutoTrackManager {
	return &AutoTrackManager{
		trips:    trips,
		vehicles: vehicles,
		settings: settings,
		events:   events,
		source:   source,
		logger:   logger,
		monitors: map[string]*TrackingMonitor{},
	}
}

// Dispatch routes a position sample to the owning user's monitor,
// creating one lazily when the user has automatic tracking enabled.
func (g *AutoTrackManager) Dispatch(ctx context.Context, pos *domain.VehiclePosition) {
	m, err := g.monitorFor(ctx, pos.UserID)
	if err != nil {
		g.logger.WarnContext(ctx, "tracking monitor unavailable", "user_id", pos.UserID, "err", err)
		return
	}
	if m == nil {
		return
	}
	m.Process(ctx, pos)
}

// Refresh reloads a user's settings and starts, updates or tears down
// their monitor accordingly. Called after every settings change.
func (g *AutoTrackManager) Refresh(ctx context.Context, userID string) error {
	s, err := g.settings.Get(ctx, userID)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	m, ok := g.monitors[userID]
	if !s.AutoStartTrips && !s.AutoStopTrips {
		if ok {
			m.Stop()
			delete(g.monitors, userID)
			g.logger.InfoContext(ctx, "tracking monitor stopped", "user_id", userID)
		}
		return nil
	}

	if ok {
		m.UpdateSettings(*s)
		return nil
	}
	return g.startLocked(ctx, userID, *s)
}

func (g *AutoTrackManager) monitorFor(ctx context.Context, userID string) (*TrackingMonitor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m, ok := g.monitors[userID]; ok {
		return m, nil
	}

	s, err := g.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.AutoStartTrips && !s.AutoStopTrips {
		return nil, nil
	}
	if err := g.startLocked(ctx, userID, *s); err != nil {
		return nil, err
	}
	return g.monitors[userID], nil
}

// startLocked creates a monitor after confirming the position stream is
// actually reachable. Called with g.mu held.
func (g *AutoTrackManager) startLocked(ctx context.Context, userID string, s domain.Settings) error {
	if g.source != nil && !g.source.IsConnected() {
		msg := "automatic tracking unavailable: position stream is not connected"
		if g.events != nil {
			ev := &domain.TripEvent{
				Type:      domain.AutoStartFailed,
				UserID:    userID,
				Message:   msg,
				Timestamp: time.Now().Unix(),
			}
			if err := g.events.Publish(ctx, ev); err != nil {
				g.logger.WarnContext(ctx, "publish tracking event failed", "err", err)
			}
		}
		return fmt.Errorf("%s", msg)
	}

	g.monitors[userID] = newTrackingMonitor(userID, s, g.trips, g.vehicles, g.events, g.logger)
	g.logger.InfoContext(ctx, "tracking monitor started",
		"user_id", userID, "auto_start", s.AutoStartTrips, "auto_stop", s.AutoStopTrips)
	return nil
}

// StopAll tears down every monitor. Used on shutdown.
func (g *AutoTrackManager) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, m := range g.monitors {
		m.Stop()
		delete(g.monitors, id)
	}
}
