// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

import (
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Simulator implements the Device contract without hardware. Sensor values
// are fabricated with a small random walk around room temperature, and the
// configuration lifecycle mirrors the board's: a volatile RAM copy that
// WriteConfig mutates and a separate NVM copy that only the save/load/reset
// commands touch. PowerCycle discards the RAM copy, which makes the
// volatility contract observable in tests.
type Simulator struct {
	connected bool
	rng       *rand.Rand

	ram SensorWalk

	ramConfig DeviceConfig
	nvmConfig DeviceConfig

	duties          [FanCount]byte
	displayOverride bool
}

// SensorWalk carries the simulator's drifting sensor baselines.
type SensorWalk struct {
	Thermistor1 float64
	Thermistor2 float64
	Ambient     float64
	Humidity    float64
}

// NewSimulator returns a disconnected simulator seeded for reproducible
// runs when seed is non-zero.
func NewSimulator(seed int64) *Simulator {
	if seed == 0 {
		seed = 1
	}
	return &Simulator{
		rng: rand.New(rand.NewSource(seed)),
		ram: SensorWalk{
			Thermistor1: 32.0,
			Thermistor2: 28.5,
			Ambient:     24.0,
			Humidity:    45.0,
		},
		ramConfig: DefaultConfig(),
		nvmConfig: DefaultConfig(),
	}
}

// Connect succeeds immediately; there is no transport to open.
func (s *Simulator) Connect() error {
	if s.connected {
		return ErrAlreadyConnected
	}
	s.connected = true
	return nil
}

// Disconnect mirrors the hardware lifecycle, including the no-op failure
// when already disconnected.
func (s *Simulator) Disconnect() error {
	if !s.connected {
		return ErrNotConnected
	}
	s.connected = false
	return nil
}

// Firmware reports a revision with no known quirks.
func (s *Simulator) Firmware() byte { return 0x10 }

func (s *Simulator) walk(v *float64, step, min, max float64) {
	*v += (s.rng.Float64() - 0.5) * step
	if *v < min {
		*v = min
	}
	if *v > max {
		*v = max
	}
}

// ReadSensors fabricates a plausible snapshot. Tach readings follow the
// last requested duty at roughly 20 RPM per percent plus jitter.
func (s *Simulator) ReadSensors() (SensorSnapshot, error) {
	if !s.connected {
		return SensorSnapshot{}, ErrNotConnected
	}

	s.walk(&s.ram.Thermistor1, 0.4, 20, 60)
	s.walk(&s.ram.Thermistor2, 0.4, 20, 60)
	s.walk(&s.ram.Ambient, 0.2, 18, 35)
	s.walk(&s.ram.Humidity, 0.6, 25, 75)

	snap := SensorSnapshot{
		Thermistor1: int16(s.ram.Thermistor1 * 10),
		Thermistor2: int16(s.ram.Thermistor2 * 10),
		Ambient:     int16(s.ram.Ambient * 10),
		Humidity:    int16(s.ram.Humidity * 10),
		ExternalFan: DutyAuto,
		VoltageIn:   120 + uint16(s.rng.Intn(2)), // ~12.0 V
		CurrentIn:   8 + uint16(s.rng.Intn(5)),   // ~0.8 A
	}
	for i := 0; i < FanCount; i++ {
		snap.FanTach[i] = uint16(int(s.duties[i])*20 + s.rng.Intn(40))
	}
	return snap, nil
}

// SetFanDuty validates and clamps exactly like the hardware path.
func (s *Simulator) SetFanDuty(channel, duty int) error {
	if channel < 0 || channel >= FanCount {
		return fmt.Errorf("%w: fan channel %d out of range [0,%d)", ErrInvalidArgument, channel, FanCount)
	}
	if !s.connected {
		return ErrNotConnected
	}
	s.duties[channel] = ClampDuty(duty)
	return nil
}

// ReadConfig returns the RAM configuration with a checksum stamped the way
// the board would report it.
func (s *Simulator) ReadConfig() (DeviceConfig, error) {
	if !s.connected {
		return DeviceConfig{}, ErrNotConnected
	}
	encoded := EncodeConfig(s.ramConfig)
	binary.LittleEndian.PutUint16(encoded[0:2], ConfigChecksum(encoded))
	return DecodeConfig(encoded)
}

// WriteConfig replaces the volatile RAM configuration. As on hardware, the
// change is lost on PowerCycle unless SaveConfig runs first.
func (s *Simulator) WriteConfig(cfg DeviceConfig) error {
	if !s.connected {
		return ErrNotConnected
	}
	s.ramConfig = cfg
	return nil
}

func (s *Simulator) SaveConfig() error {
	if !s.connected {
		return ErrNotConnected
	}
	s.nvmConfig = s.ramConfig
	return nil
}

func (s *Simulator) LoadConfig() error {
	if !s.connected {
		return ErrNotConnected
	}
	s.ramConfig = s.nvmConfig
	return nil
}

func (s *Simulator) ResetConfig() error {
	if !s.connected {
		return ErrNotConnected
	}
	s.ramConfig = DefaultConfig()
	return nil
}

// SetDisplayOverride records the override state; there is no display.
func (s *Simulator) SetDisplayOverride(enable bool) error {
	if !s.connected {
		return ErrNotConnected
	}
	s.displayOverride = enable
	return nil
}

// SendFramebuffer validates the frame length like the hardware path and
// otherwise discards the bytes.
func (s *Simulator) SendFramebuffer(fb []byte) error {
	if len(fb) != FramebufferLen {
		return fmt.Errorf("%w: framebuffer is %d bytes, want %d", ErrInvalidArgument, len(fb), FramebufferLen)
	}
	if !s.connected {
		return ErrNotConnected
	}
	return nil
}

// PowerCycle simulates pulling power: the RAM configuration reverts to the
// NVM copy, fan duties reset, the connection drops.
func (s *Simulator) PowerCycle() {
	s.connected = false
	s.ramConfig = s.nvmConfig
	s.duties = [FanCount]byte{}
	s.displayOverride = false
}

// DefaultConfig is the factory configuration the board ships with: every
// channel temperature-controlled off thermistor 1 with a gentle two-point
// curve, except the last channel which follows the external duty input.
func DefaultConfig() DeviceConfig {
	var cfg DeviceConfig
	for p := 0; p < ProfileCount; p++ {
		for f := 0; f < FanCount; f++ {
			fc := FanConfig{
				Mode:   ModeTemperature,
				Source: SourceThermistor1,
				Curve: [CurvePointNum]CurvePoint{
					{Temperature: 250, Duty: 20},
					{Temperature: 500, Duty: 100},
				},
				RampStep:  5,
				FixedDuty: 50,
				MinDuty:   20,
				MaxDuty:   100,
			}
			if f == FanCount-1 {
				fc.Mode = ModeExternal
				fc.FixedDuty = DutyAuto
			}
			cfg.Profiles[p].Fans[f] = fc
		}
	}
	return cfg
}
