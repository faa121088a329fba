package sac

import "math"

// EntropyBonus implements the temperature-scaled entropy term of the
// soft actor-critic objective. The temperature is a single learned
// scalar stored in log space and owned by the EntropyBonus instance;
// an external optimizer updates it through SetLogTemperature.
type EntropyBonus struct {
	logTemperature float64
}

// NewEntropyBonus returns a new EntropyBonus with log temperature 0,
// so the starting temperature is 1
func NewEntropyBonus() *EntropyBonus {
	return &EntropyBonus{}
}

// Bonus returns -exp(logTemperature) * logPi, the exploration bonus
// for an action with log-probability logPi
func (e *EntropyBonus) Bonus(logPi float64) float64 {
	return -math.Exp(e.logTemperature) * logPi
}

// LogTemperature returns the current log temperature
func (e *EntropyBonus) LogTemperature() float64 {
	return e.logTemperature
}

// SetLogTemperature sets the log temperature. Only the external
// optimizer owning the training loop should call this.
func (e *EntropyBonus) SetLogTemperature(logTemperature float64) {
	e.logTemperature = logTemperature
}

// Temperature returns the current temperature exp(logTemperature)
func (e *EntropyBonus) Temperature() float64 {
	return math.Exp(e.logTemperature)
}
