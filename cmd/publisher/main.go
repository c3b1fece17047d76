// Mock GPS publisher. Simulates one user's phone on a drive/idle cycle
// so the auto-tracking monitor can be exercised without real hardware.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type positionMessage struct {
	VehicleID string   `json:"vehicle_id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	SpeedMS   *float64 `json:"speed_ms"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp int64    `json:"timestamp"`
}

const (
	drivePhase = 5 * time.Minute
	idlePhase  = 8 * time.Minute

	// Roughly central Munich.
	startLat = 48.137
	startLon = 11.575
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds> [user_id] [vehicle_id]\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	userID := "demo-user"
	if len(os.Args) > 2 {
		userID = os.Args[2]
	}
	vehicleID := "demo-vehicle"
	if len(os.Args) > 3 {
		vehicleID = os.Args[3]
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("logbook-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("/logbook/user/%s/position", userID)
	log.Printf("connected to %s, publishing to %s every %ds...", broker, topic, intervalSec)

	lat, lon := startLat, startLon
	phaseStart := time.Now()
	driving := false

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if driving && time.Since(phaseStart) > drivePhase {
			driving = false
			phaseStart = time.Now()
			log.Printf("phase: idle")
		} else if !driving && time.Since(phaseStart) > idlePhase {
			driving = true
			phaseStart = time.Now()
			log.Printf("phase: driving")
		}

		var speedMS float64
		if driving {
			// 30-60 km/h with some jitter, drifting north-east.
			speedMS = (30 + rand.Float64()*30) / 3.6
			lat += speedMS * float64(intervalSec) / 111000 * 0.7
			lon += speedMS * float64(intervalSec) / 111000 * 0.7
		} else {
			speedMS = rand.Float64() * 0.5
		}
		accuracy := 5 + rand.Float64()*10

		msg := positionMessage{
			VehicleID: vehicleID,
			Latitude:  lat,
			Longitude: lon,
			SpeedMS:   &speedMS,
			Accuracy:  &accuracy,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published: %s", payload)
	}
}
