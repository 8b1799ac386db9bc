// Package config is the process-wide configuration surface that governs a
// client transaction's timing (spec.md §6). It follows the original
// implementation's StunClientTransaction.initTransactionConfiguration:
// invalid values are logged and ignored in favor of the documented
// default, never propagated as a construction failure.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sonbt56/ice4j/timing"
)

// Environment variable names: the original Java system-property keys
// (org.ice4j.*) this engine was distilled from, without the org.ice4j.
// prefix.
const (
	EnvMaxRetransmissions = "MAX_RETRANSMISSIONS"
	EnvOriginalWaitMillis = "ORIGINAL_WAIT_INTERVAL"
	EnvMaxWaitMillis      = "MAX_WAIT_INTERVAL"
	EnvKeepAfterResponse  = "KEEP_CLIENT_TRANS_AFTER_A_RESPONSE"
)

// Config is sampled once at transaction construction time (spec.md §6:
// "Configuration is sampled at transaction construction time, not per
// retransmit"), never re-read live by a running transaction.
type Config struct {
	Timing timing.Policy
	// KeepAfterResponse enables the advanced mode where a transaction
	// stays registered after its first matching response, allowing
	// additional OnResponse deliveries until cancel or timeout.
	KeepAfterResponse bool
}

// Default returns the documented defaults: N=6, T0=100ms, Tmax=1600ms,
// KeepAfterResponse=false.
func Default() Config {
	return Config{Timing: timing.Default(), KeepAfterResponse: false}
}

// FromEnv builds a Config by reading the MAX_RETRANSMISSIONS,
// ORIGINAL_WAIT_INTERVAL, MAX_WAIT_INTERVAL, and
// KEEP_CLIENT_TRANS_AFTER_A_RESPONSE environment variables, falling back
// to the default for any key that is absent or fails to parse.
func FromEnv() Config {
	cfg := Default()

	if v, present := lookupInt(EnvMaxRetransmissions); present {
		if v >= 1 {
			cfg.Timing.MaxRetransmissions = v
		} else {
			logInvalid(EnvMaxRetransmissions, strconv.Itoa(v))
		}
	}

	if v, present := lookupInt(EnvOriginalWaitMillis); present {
		if v >= 1 {
			cfg.Timing.OriginalWait = time.Duration(v) * time.Millisecond
		} else {
			logInvalid(EnvOriginalWaitMillis, strconv.Itoa(v))
		}
	}

	if v, present := lookupInt(EnvMaxWaitMillis); present {
		wait := time.Duration(v) * time.Millisecond
		if wait >= cfg.Timing.OriginalWait {
			cfg.Timing.MaxWait = wait
		} else {
			logInvalid(EnvMaxWaitMillis, strconv.Itoa(v))
		}
	}

	if raw, ok := os.LookupEnv(EnvKeepAfterResponse); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			cfg.KeepAfterResponse = b
		} else {
			logInvalid(EnvKeepAfterResponse, raw)
		}
	}

	if err := cfg.Timing.Validate(); err != nil {
		logrus.WithError(err).Warn("config: assembled timing policy invalid, reverting to default")
		cfg.Timing = timing.Default()
	}

	return cfg
}

// lookupInt reads an environment variable as an integer. present is false
// when the variable is unset or blank, and also when a non-blank value
// fails to parse (that value is logged here as invalid); range checks on
// a parsed value are left to the caller.
func lookupInt(key string) (value int, present bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logInvalid(key, raw)
		return 0, false
	}
	return v, true
}

func logInvalid(key, value string) {
	logrus.WithFields(logrus.Fields{
		"key": key, "value": value,
	}).Warn("config: invalid value, falling back to default")
}
