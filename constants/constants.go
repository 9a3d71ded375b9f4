package constants

import (
	"os"
	"strconv"
)

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func GetOutDir() string {
	return getEnv("OUT_PATH", "./out")
}

func GetListenAddr() string {
	return getEnv("LISTEN_ADDR", ":8080")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMO_REGION", "localhost")
}

func GetDynamoTable() string {
	return getEnv("DYNAMO_TABLE", "voicelead-progressions")
}

func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

func GetEnvironment() string {
	return getEnv("ENVIRONMENT", "development")
}

// GetMidiInPort falls back to the first port when MIDI_IN_PORT is unset or garbage.
func GetMidiInPort() int {
	port, err := strconv.Atoi(os.Getenv("MIDI_IN_PORT"))
	if err != nil || port < 0 {
		return 0
	}
	return port
}

// Register window used when searching for voicings: C2..C6, i.e. two octaves
// either side of middle C.
const (
	RegisterLow  = 36
	RegisterHigh = 84
)

// BassFloor is the lowest key the bass of an initial closed-position voicing may take.
const BassFloor = 48

const DefaultDuration = 1.0

// NOTE: velocity/pan/instrument are left for the rescale stage to remap
const (
	NeutralInstrument = 0
	NeutralVelocity   = 64
	NeutralPan        = 0.0
)

// 960 ticks per quarter at 60 bpm makes one time unit one second
const (
	TicksPerQuarter = 960
	TempoBPM        = 60
)
