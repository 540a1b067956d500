package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motorctl/internal/config"
	"motorctl/internal/drive"
	"motorctl/internal/udp"
	"motorctl/internal/web"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./motorctl.yaml", "Path to YAML config")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Drive.LockMemory {
		if err := drive.LockMemory(); err != nil {
			log.Printf("mlockall failed (continuing unlocked): %v", err)
		}
	}

	svc := drive.New(drive.Config{
		Chip:          cfg.Drive.Chip,
		PWMLine:       cfg.Drive.PWMLine,
		MeasLine:      cfg.Drive.MeasLine,
		CarrierPeriod: cfg.Drive.CarrierPeriod,
		PWMSteps:      cfg.Drive.PWMSteps,
		InitialDuty:   cfg.Drive.InitialDuty,
		RTPriority:    cfg.Drive.RTPriority,
	})
	if err := svc.Start(ctx); err != nil {
		log.Fatalf("drive start failed: %v", err)
	}
	defer svc.Close()

	log.Printf("motorctl starting")
	log.Printf("pwm %s:%d carrier=%s steps=%d duty=%d%%",
		cfg.Drive.Chip, cfg.Drive.PWMLine, cfg.Drive.CarrierPeriod, cfg.Drive.PWMSteps, cfg.Drive.InitialDuty)
	log.Printf("meas %s:%d rising edges", cfg.Drive.Chip, cfg.Drive.MeasLine)

	if cfg.Telemetry.Enable {
		broadcaster, err := udp.NewBroadcaster(cfg.Telemetry.Dest)
		if err != nil {
			log.Fatalf("telemetry init failed: %v", err)
		}
		defer broadcaster.Close()
		log.Printf("telemetry dest=%s interval=%s", cfg.Telemetry.Dest, cfg.Telemetry.Interval)

		go func() {
			err := broadcaster.Run(ctx, cfg.Telemetry.Interval, func() []byte {
				return []byte(svc.Control().ReadPeriod())
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("telemetry stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: cfg.Control.Listen, Handler: web.Handler(svc)}
	go func() {
		log.Printf("control api listening on %s", cfg.Control.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("control api stopped: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Printf("motorctl stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	svc.Close()
}
