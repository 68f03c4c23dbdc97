package config

import "testing"

func TestRaceConfig_ApplyDefaults(t *testing.T) {
	var r RaceConfig
	r.ApplyDefaults()

	if r.DefaultMaxTokensCrossword != DefaultMaxTokensCrossword {
		t.Errorf("DefaultMaxTokensCrossword = %d, want %d", r.DefaultMaxTokensCrossword, DefaultMaxTokensCrossword)
	}
	if r.DefaultMaxTokensWordle != DefaultMaxTokensWordle {
		t.Errorf("DefaultMaxTokensWordle = %d, want %d", r.DefaultMaxTokensWordle, DefaultMaxTokensWordle)
	}
	if r.DefaultTimeoutMsCrossword != DefaultTimeoutMsCrossword {
		t.Errorf("DefaultTimeoutMsCrossword = %d, want %d", r.DefaultTimeoutMsCrossword, DefaultTimeoutMsCrossword)
	}
	if r.DefaultTimeoutMsWordle != DefaultTimeoutMsWordle {
		t.Errorf("DefaultTimeoutMsWordle = %d, want %d", r.DefaultTimeoutMsWordle, DefaultTimeoutMsWordle)
	}
	if r.SpeedBonusThresholdMs != DefaultSpeedBonusThresholdMs {
		t.Errorf("SpeedBonusThresholdMs = %d, want %d", r.SpeedBonusThresholdMs, DefaultSpeedBonusThresholdMs)
	}
}

func TestRaceConfig_ApplyDefaults_PreservesExplicitValues(t *testing.T) {
	r := RaceConfig{DefaultMaxTokensCrossword: 32, PublicMaxModels: 4}
	r.ApplyDefaults()

	if r.DefaultMaxTokensCrossword != 32 {
		t.Errorf("explicit DefaultMaxTokensCrossword overwritten: got %d", r.DefaultMaxTokensCrossword)
	}
	if r.PublicMaxModels != 4 {
		t.Errorf("PublicMaxModels = %d, want 4", r.PublicMaxModels)
	}
	if r.DefaultTimeoutMsWordle != DefaultTimeoutMsWordle {
		t.Errorf("zero field not defaulted: DefaultTimeoutMsWordle = %d", r.DefaultTimeoutMsWordle)
	}
}

func TestLogLevel_IsValid(t *testing.T) {
	cases := []struct {
		level LogLevel
		want  bool
	}{
		{LogLevelDebug, true},
		{LogLevelInfo, true},
		{LogLevelWarn, true},
		{LogLevelError, true},
		{LogLevel("trace"), false},
		{LogLevel(""), false},
	}
	for _, tc := range cases {
		if got := tc.level.IsValid(); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}
