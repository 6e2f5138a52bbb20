package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/l0nax/go-spew/spew"
	"github.com/swdee/go-i2c"
	"github.com/swdee/go-vl6180x"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {

	i2cbus := flag.String("b", "/dev/i2c-1", "Path to I2C bus to use")
	usePeriph := flag.Bool("periph", false, "Use periph.io instead of i2c-dev for the bus, -b is then the periph bus name")
	xshut := flag.String("xshut", "", "GPIO name of the sensor shutdown pin, eg GPIO17")
	cfgFile := flag.String("config", "", "YAML configuration file")
	count := flag.Int("n", 10, "Number of readings to take")
	verbose := flag.Bool("v", false, "Log driver debug output and dump configuration")
	flag.Parse()

	cfg := vl6180x.NewConfig()

	if *cfgFile != "" {
		var err error

		if cfg, err = vl6180x.LoadConfigFile(*cfgFile); err != nil {
			log.Fatalf("Load config: %v", err)
		}
	}

	logger := log.New(os.Stderr, "vl6180x: ", log.LstdFlags)

	if *verbose {
		spew.Dump(cfg)
	}

	if *xshut != "" || *usePeriph {
		if _, err := host.Init(); err != nil {
			log.Fatal(err)
		}
	}

	bus, closeBus := openBus(*usePeriph, *i2cbus, cfg.Address())
	defer closeBus()

	var sensor *vl6180x.VL6180X

	if *xshut != "" {
		pin := gpioreg.ByName(*xshut)

		if pin == nil {
			log.Fatalf("Unknown GPIO %q", *xshut)
		}

		sensor = vl6180x.NewPoweredOff(bus, cfg, debugLog(*verbose, logger))

		// hold in reset briefly so the device boots fresh
		if err := sensor.PowerOff(pin); err != nil {
			log.Fatal(err)
		}

		time.Sleep(10 * time.Millisecond)

		if err := sensor.PowerOnAndInit(pin); err != nil {
			log.Fatal(err)
		}

	} else {
		var err error

		if sensor, err = vl6180x.NewWithLog(bus, cfg, debugLog(*verbose, logger)); err != nil {
			log.Fatal(err)
		}
	}

	id, err := sensor.ReadIdentification()

	if err != nil {
		log.Fatalf("Read identification: %v", err)
	}

	if id.Model != vl6180x.ModelID {
		log.Printf("Unexpected model ID 0x%02X", id.Model)
	}

	log.Printf("Model 0x%02X rev %d.%d module rev %d.%d", id.Model,
		id.ModelRevMajor, id.ModelRevMinor, id.ModuleRevMajor, id.ModuleRevMinor)

	for i := 0; i < *count; i++ {

		mm, err := sensor.ReadRangeSingleMillimeters()

		if err != nil {
			log.Printf("Range error: %v", err)
		} else {
			fmt.Printf("Distance: %d mm\n", mm)
		}

		lux, err := sensor.ReadAmbientSingleLux()

		switch {
		case err == nil:
			fmt.Printf("Ambient: %.2f lux\n", lux)
		case vl6180x.IsRetryable(err):
			log.Printf("Ambient not ready: %v", err)
		default:
			var se *vl6180x.AmbientStatusError

			if errors.As(err, &se) {
				log.Printf("Ambient status: %s", se.Code)
			} else {
				log.Printf("Ambient error: %v", err)
			}
		}

		time.Sleep(200 * time.Millisecond)
	}
}

// openBus opens the I2C bus selected on the command line
func openBus(usePeriph bool, name string, addr uint8) (vl6180x.Bus, func()) {

	if usePeriph {
		b, err := i2creg.Open(name)

		if err != nil {
			log.Fatal(err)
		}

		return vl6180x.NewPeriphBus(b, addr), func() { b.Close() }
	}

	conn, err := i2c.New(addr, name)

	if err != nil {
		log.Fatal(err)
	}

	bus, err := vl6180x.NewI2CBus(conn)

	if err != nil {
		log.Fatal(err)
	}

	return bus, func() { bus.Close() }
}

func debugLog(verbose bool, logger *log.Logger) *log.Logger {
	if verbose {
		return logger
	}
	return nil
}
