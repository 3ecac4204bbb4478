package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// keep settings generic, type-convert on the fly; the default value's
// type drives the JSON conversion
type settings struct {
	settings map[string]interface{}
}

func defaultSettings() *settings {
	s := make(map[string]interface{})

	s["name"] = "joywatch"
	s["driver"] = "mem" // mem | rpio | gpio | key
	s["mode"] = "scan"  // scan | burst
	s["pin"] = 17
	s["pinName"] = "GPIO17"
	s["key"] = "j"

	s["scanTime"], _ = time.ParseDuration("20ms")
	s["burstWindow"], _ = time.ParseDuration("10s")
	s["wakeTime"], _ = time.ParseDuration("1s")

	s["debounceTime"], _ = time.ParseDuration("60ms")
	s["longPressStart"], _ = time.ParseDuration("1500ms")
	s["longPressHold"], _ = time.ParseDuration("100ms")
	s["clickWindow"], _ = time.ParseDuration("500ms")
	s["clickMaxCount"] = 0

	s["adcMin"] = 0
	s["adcMax"] = 4096
	s["sensitivity"] = 1000
	s["normalizedRange"] = 2048

	s["httpAddr"] = ":8080"
	s["logFile"] = ""

	return &settings{settings: s}
}

func (s *settings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try "true" and "false"
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal = true
				case "false":
					bVal = false
				default:
					return err
				}
				err = nil
			}
			s.settings[k] = bVal
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func loadSettings(path string) (*settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("reading configuration from '%s'", path)
	if err := s.settingsFromJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *settings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *settings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *settings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
