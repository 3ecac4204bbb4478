// joywatch wires one joystick device to the event manager and serves
// its state over HTTP. It exists to exercise the stack on real
// hardware (or simulated, with -sim) and to log every gesture the
// device produces.
//
// joywatch -config={config file} [-sim]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"joytick/driver/gpiostick"
	"joytick/driver/keystick"
	"joytick/driver/memstick"
	"joytick/driver/rpiostick"
	"joytick/joystick"
)

var wg sync.WaitGroup

// every event kind joywatch reports
var allEvents = []joystick.Event{
	joystick.PressDown,
	joystick.PressUp,
	joystick.SingleClick,
	joystick.DoubleClick,
	joystick.PressRepeat,
	joystick.LongPressStart,
	joystick.LongPressHold,
	joystick.RecoverPressUp,
	joystick.Up,
	joystick.Down,
	joystick.Left,
	joystick.Right,
	joystick.LongUp,
	joystick.LongDown,
	joystick.LongLeft,
	joystick.LongRight,
}

func setupLogging(s *settings) {
	logFile := s.GetString("logFile")
	if logFile == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
	})
}

// buildDriver picks the hardware backend from the settings.
func buildDriver(s *settings, sim bool) (joystick.Driver, joystick.HardwareConfig, error) {
	mode := joystick.ScanMode
	if s.GetString("mode") == "burst" {
		mode = joystick.BurstMode
	}
	hw := joystick.HardwareConfig{Mode: mode}

	name := s.GetString("driver")
	if sim {
		name = "mem"
	}
	switch name {
	case "mem":
		// simulated stick with centered axes
		adc := memstick.NewADC()
		mid := int32(s.GetInt("adcMin")+s.GetInt("adcMax")) / 2
		adc.Set(0, 0, mid)
		adc.Set(0, 1, mid)
		hw.ADC = adc
		hw.ChannelX, hw.ChannelY = 0, 1
		return memstick.New(), hw, nil
	case "rpio":
		return rpiostick.New(s.GetInt("pin")), hw, nil
	case "gpio":
		return gpiostick.New(s.GetString("pinName")), hw, nil
	case "key":
		key := s.GetString("key")
		if key == "" {
			return nil, hw, fmt.Errorf("driver 'key' needs a key setting")
		}
		return keystick.New([]rune(key)[0]), hw, nil
	}
	return nil, hw, fmt.Errorf("unknown driver %q", name)
}

func deviceConfig(s *settings) *joystick.Config {
	return &joystick.Config{
		DebounceTime:    s.GetDuration("debounceTime"),
		LongPressStart:  s.GetDuration("longPressStart"),
		LongPressHold:   s.GetDuration("longPressHold"),
		ClickWindow:     s.GetDuration("clickWindow"),
		ClickMaxCount:   s.GetInt("clickMaxCount"),
		ADCMin:          int32(s.GetInt("adcMin")),
		ADCMax:          int32(s.GetInt("adcMax")),
		Sensitivity:     int32(s.GetInt("sensitivity")),
		NormalizedRange: int32(s.GetInt("normalizedRange")),
	}
}

func main() {
	configFile := flag.String("config", "", "config file path")
	sim := flag.Bool("sim", false, "use the simulated driver regardless of config")
	flag.Parse()

	s, err := loadSettings(*configFile)
	if err != nil {
		log.Fatalf("could not load conf file: %v", err)
	}
	setupLogging(s)
	s.Dump()

	drv, hw, err := buildDriver(s, *sim)
	if err != nil {
		log.Fatal(err)
	}

	m := joystick.New(nil)
	if d := s.GetDuration("scanTime"); d > 0 {
		if err := m.SetScanTime(d); err != nil {
			log.Fatalf("bad scanTime %v: %v", d, err)
		}
	}
	if d := s.GetDuration("burstWindow"); d > 0 {
		m.SetBurstWindow(d)
	}

	name := s.GetString("name")
	if err := m.Register(name, drv, hw); err != nil {
		log.Fatalf("register %s: %v", name, err)
	}
	dev, err := m.Create(name, deviceConfig(s))
	if err != nil {
		log.Fatalf("create %s: %v", name, err)
	}

	secret := time.Now().String()
	log.Printf("api secret: %s", secret)
	handler := newHandler(m, dev, name, secret)
	if err := handler.watch(allEvents); err != nil {
		log.Fatalf("watch %s: %v", name, err)
	}

	// burst devices need an external wake source; a coarse ticker
	// stands in for the wake interrupt
	wakeStop := make(chan struct{})
	if hw.Mode == joystick.BurstMode {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tick := time.NewTicker(s.GetDuration("wakeTime"))
			defer tick.Stop()
			for {
				select {
				case <-wakeStop:
					return
				case <-tick.C:
					m.WakeBurst()
				}
			}
		}()
	}

	svc := &httpService{}
	svc.launch(handler, s.GetString("httpAddr"))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down")

	close(wakeStop)
	svc.stop()
	if err := m.Delete(dev); err != nil {
		log.Printf("delete %s: %v", name, err)
	}
	m.Close()
	wg.Wait()
}
