package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	_ "github.com/kidoman/embd/host/all"

	"github.com/cgxeiji/max3010x/v2"
	"github.com/cgxeiji/max3010x/v2/bus"
)

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	variant := flag.String("variant", "", "sensor variant (max30100, max30101, max30102 or max30105)")
	driver := flag.String("driver", "", "bus driver (periph, goi2c or embd)")
	busName := flag.String("bus", "", "bus name, device file or bus number")
	n := flag.Int("n", 0, "number of samples to read, 0 streams until interrupted")
	trace := flag.Bool("trace", false, "log every bus transaction")
	verbose := flag.Bool("v", false, "log driver events")
	flag.Parse()

	cfg := Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = Load(*cfgPath); err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}
	if *variant != "" {
		cfg.Sensor.Variant = *variant
	}
	if *driver != "" {
		cfg.Sensor.Driver = *driver
	}
	if *busName != "" {
		cfg.Sensor.Bus = *busName
	}
	cfg.Sensor.Trace = cfg.Sensor.Trace || *trace
	if err := Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	b, closeBus, err := openBus(cfg.Sensor)
	if err != nil {
		log.Fatal(err)
	}
	defer closeBus()
	if cfg.Sensor.Trace {
		b = &bus.Trace{Bus: b, Log: log.New(os.Stderr, "", log.Lmicroseconds)}
	}

	opts := []max3010x.Option{max3010x.OnAddr(cfg.Sensor.Address)}
	if *verbose {
		opts = append(opts, max3010x.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}

	s, err := newSensor(b, cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer s.dev.Shutdown()

	rev, err := s.dev.ReadRevisionID()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s rev.%d detected at %#02x\n", s.name, rev, cfg.Sensor.Address)

	temp, err := s.dev.ReadTemperature()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("temp = %02.2f\n", temp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := stream(ctx, s, cfg, *n, os.Stdout); err != nil {
		log.Printf("stream stopped: %v", err)
	}
}
