// Package sim generates synthetic temperature/pressure readings so the
// viewer can be exercised end-to-end without real hardware on the bus.
package sim

import (
	"math"
	"math/rand"
	"time"
)

// SensorConfig groups the waveform parameters. Units: Hz, °C, kPa, radians.
type SensorConfig struct {
	TempFreqHz    float64 `yaml:"temp_freq_hz"`
	TempAmpC      float64 `yaml:"temp_amp_c"`
	BaseTempC     float64 `yaml:"base_temp_c"`
	PressFreqHz   float64 `yaml:"press_freq_hz"`
	PressAmpKPa   float64 `yaml:"press_amp_kpa"`
	BasePressKPa  float64 `yaml:"base_press_kpa"`
	PressPhaseRad float64 `yaml:"press_phase_rad"`
	// CorrKPaPerC couples pressure to temperature drift so the two traces
	// move together without strict proportionality.
	CorrKPaPerC   float64 `yaml:"corr_kpa_per_c"`
	NoiseFraction float64 `yaml:"noise_fraction"`
}

func (c *SensorConfig) ApplyDefaults() {
	if c.TempFreqHz == 0 {
		c.TempFreqHz = 0.1
	}
	if c.TempAmpC == 0 {
		c.TempAmpC = 400.0
	}
	if c.BaseTempC == 0 {
		c.BaseTempC = 27.5
	}
	if c.PressFreqHz == 0 {
		c.PressFreqHz = 0.8333
	}
	if c.PressAmpKPa == 0 {
		c.PressAmpKPa = 15.0
	}
	if c.BasePressKPa == 0 {
		c.BasePressKPa = 1400.0
	}
	if c.PressPhaseRad == 0 {
		c.PressPhaseRad = 0.7
	}
	if c.CorrKPaPerC == 0 {
		c.CorrKPaPerC = 0.5
	}
	if c.NoiseFraction == 0 {
		c.NoiseFraction = 0.15
	}
}

// Sensor produces one reading per call: a slow temperature wave and a faster
// pressure wave with uniform noise and a partial cross-coupling.
type Sensor struct {
	cfg SensorConfig
	rng *rand.Rand
	t0  time.Time
}

// NewSensor seeds the waveform generator. Epoch t0 is fixed at creation so
// repeated reads advance along the same curve.
func NewSensor(cfg SensorConfig) *Sensor {
	cfg.ApplyDefaults()
	return &Sensor{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		t0:  time.Now(),
	}
}

// Read returns the instantaneous temperature (°C) and pressure (kPa) at now.
func (s *Sensor) Read(now time.Time) (tempC, pressKPa float64) {
	t := now.Sub(s.t0).Seconds()

	tempC = s.noisySine(s.cfg.TempFreqHz, s.cfg.TempAmpC, s.cfg.BaseTempC, 0, t)
	fast := s.noisySine(s.cfg.PressFreqHz, s.cfg.PressAmpKPa, 0, s.cfg.PressPhaseRad, t)
	pressKPa = s.cfg.BasePressKPa + fast + s.cfg.CorrKPaPerC*(tempC-s.cfg.BaseTempC)
	return tempC, pressKPa
}

func (s *Sensor) noisySine(freqHz, amp, offset, phase, t float64) float64 {
	noiseRange := amp * s.cfg.NoiseFraction
	noise := (s.rng.Float64()*2 - 1) * noiseRange
	return offset + amp*math.Sin(2*math.Pi*freqHz*t+phase) + noise
}
