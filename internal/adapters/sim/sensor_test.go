package sim

import (
	"math"
	"testing"
	"time"
)

func TestSensorReadingsStayWithinEnvelope(t *testing.T) {
	cfg := SensorConfig{}
	cfg.ApplyDefaults()
	s := NewSensor(cfg)

	now := time.Now()
	for i := 0; i < 200; i++ {
		tempC, pressKPa := s.Read(now.Add(time.Duration(i) * 100 * time.Millisecond))

		if math.IsNaN(tempC) || math.IsInf(tempC, 0) || math.IsNaN(pressKPa) || math.IsInf(pressKPa, 0) {
			t.Fatalf("non-finite reading: T=%v P=%v", tempC, pressKPa)
		}

		tempBound := cfg.TempAmpC * (1 + cfg.NoiseFraction)
		if math.Abs(tempC-cfg.BaseTempC) > tempBound {
			t.Fatalf("temperature %v outside base±%v", tempC, tempBound)
		}

		pressBound := cfg.PressAmpKPa*(1+cfg.NoiseFraction) + cfg.CorrKPaPerC*tempBound
		if math.Abs(pressKPa-cfg.BasePressKPa) > pressBound {
			t.Fatalf("pressure %v outside base±%v", pressKPa, pressBound)
		}
	}
}

func TestSensorDefaultsMatchDemoRig(t *testing.T) {
	var cfg SensorConfig
	cfg.ApplyDefaults()

	if cfg.BaseTempC != 27.5 || cfg.BasePressKPa != 1400.0 {
		t.Fatalf("unexpected baselines: T=%v P=%v", cfg.BaseTempC, cfg.BasePressKPa)
	}
	if cfg.TempFreqHz != 0.1 || cfg.PressFreqHz != 0.8333 {
		t.Fatalf("unexpected frequencies: %v / %v", cfg.TempFreqHz, cfg.PressFreqHz)
	}
}
