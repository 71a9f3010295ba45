package sim

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Registry names resolved when the facade builds its engine.
const (
	DefaultEngineType    = "serial"
	DefaultSchedulerType = "tree"
)

// Environment variables that override the default engine and scheduler
// types. A project-local .env file is honored through godotenv.
const (
	EngineTypeEnv    = "NETSIM_ENGINE"
	SchedulerTypeEnv = "NETSIM_SCHEDULER"
)

var (
	configLock    sync.Mutex
	dotEnvLoaded  bool
	engineType    string
	schedulerType string
)

// SetEngineType selects the engine implementation, by registered name,
// that the facade builds at its next lazy construction. It has no effect
// on an engine that already exists; destroy it first.
func SetEngineType(name string) {
	configLock.Lock()
	engineType = name
	configLock.Unlock()
}

// SetSchedulerType selects the scheduler strategy, by registered name,
// installed into the engine the facade builds at its next lazy
// construction. Use SetScheduler to swap the scheduler of a live engine.
func SetSchedulerType(name string) {
	configLock.Lock()
	schedulerType = name
	configLock.Unlock()
}

// resolveTypes decides which engine and scheduler to build: programmatic
// setting first, then environment, then the defaults.
func resolveTypes() (engineName, schedulerName string) {
	configLock.Lock()
	defer configLock.Unlock()

	if !dotEnvLoaded {
		// Missing .env files are fine; the environment still applies.
		_ = godotenv.Load()
		dotEnvLoaded = true
	}

	engineName = engineType
	if engineName == "" {
		engineName = os.Getenv(EngineTypeEnv)
	}
	if engineName == "" {
		engineName = DefaultEngineType
	}

	schedulerName = schedulerType
	if schedulerName == "" {
		schedulerName = os.Getenv(SchedulerTypeEnv)
	}
	if schedulerName == "" {
		schedulerName = DefaultSchedulerType
	}

	return engineName, schedulerName
}
