// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 BenchLab

package efcx9

// SensorSnapshot is one reading of every sensor on the board. Temperatures
// are in tenths of a degree, voltage in tenths of a volt, current in tenths
// of an amp. A snapshot is produced fresh on every ReadSensors call and is
// never cached by the driver.
type SensorSnapshot struct {
	Thermistor1 int16 // 0.1 °C
	Thermistor2 int16 // 0.1 °C
	Ambient     int16 // 0.1 °C
	Humidity    int16 // 0.1 %RH
	ExternalFan byte  // duty reported on the external fan input
	VoltageIn   uint16
	CurrentIn   uint16
	FanTach     [FanCount]uint16 // RPM
}

// CurvePoint is one vertex of the piecewise duty-vs-temperature function.
type CurvePoint struct {
	Temperature int16 `yaml:"temperature"` // 0.1 °C
	Duty        byte  `yaml:"duty"`        // percent
}

// FanConfig configures one fan channel within one profile. Duty values are
// percentages in [0,100], except DutyAuto on the external channel.
type FanConfig struct {
	Mode      FanMode                   `yaml:"mode"`
	Source    TempSource                `yaml:"source"`
	Curve     [CurvePointNum]CurvePoint `yaml:"curve"`
	RampStep  byte                      `yaml:"ramp_step"` // max duty change per tick
	FixedDuty byte                      `yaml:"fixed_duty"`
	MinDuty   byte                      `yaml:"min_duty"`
	MaxDuty   byte                      `yaml:"max_duty"`
}

// Profile holds one FanConfig per fan channel.
type Profile struct {
	Fans [FanCount]FanConfig `yaml:"fans"`
}

// DeviceConfig is the board's full persisted configuration. Checksum, when
// non-zero, must equal the CRC16 of the encoded config excluding the
// checksum field itself; the driver recomputes it on every write.
//
// A config written with WriteConfig lives in device RAM only and is lost on
// power cycle unless SaveConfig commits it to NVM.
type DeviceConfig struct {
	Checksum      uint16                `yaml:"-"`
	ActiveProfile byte                  `yaml:"active_profile"`
	Profiles      [ProfileCount]Profile `yaml:"profiles"`
}
