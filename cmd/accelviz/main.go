// accelviz samples a multi-channel analog sensor over an XBee serial radio
// link, scrolls the readings as terminal curves, and records sessions to
// CSV plus rendered PNG plots on demand.
//
// Interactive commands on stdin: start, stop, retry, quit.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"accelviz/internal/acquire"
	"accelviz/internal/display"
	"accelviz/internal/events"
	"accelviz/internal/logger"
	"accelviz/internal/monitor"
	"accelviz/internal/sample"
)

// reference hardware setup: 3-axis accelerometer on XBee ADC0-2
const (
	defaultPort    = "/dev/ttyUSB0"
	defaultBaud    = 9600
	defaultLogFile = "accelviz.logs"

	accelMVPerG   = 660.0
	accelOffsetMV = 1650.0
	accelDivider  = 1.0
	xbeeVrefMV    = 3300.0

	accelMin = -2.0
	accelMax = 2.0

	// 50 Hz polling, 3 s of visible history
	pollingFrequency   = 50
	displayTimeSeconds = 3
)

type options struct {
	port      string
	baud      int
	synthetic bool
	channels  int
	capacity  int
	rangeMin  float64
	rangeMax  float64
	outDir    string
	prefix    string
	logFile   string
}

func main() {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "accelviz",
		Short: "Live accelerometer monitor with session recording and export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.port, "port", defaultPort, "serial port of the XBee radio")
	cmd.Flags().IntVar(&opts.baud, "baud", defaultBaud, "serial baud rate")
	cmd.Flags().BoolVar(&opts.synthetic, "synthetic", false, "use the synthetic random-walk source instead of hardware")
	cmd.Flags().IntVar(&opts.channels, "channels", 3, "number of sensor channels")
	cmd.Flags().IntVar(&opts.capacity, "capacity", pollingFrequency*displayTimeSeconds, "points retained per display window")
	cmd.Flags().Float64Var(&opts.rangeMin, "range-min", accelMin, "initial display range lower bound")
	cmd.Flags().Float64Var(&opts.rangeMax, "range-max", accelMax, "initial display range upper bound")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "directory for exported CSV and PNG files")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "accelerometer", "file name prefix for exports")
	cmd.Flags().StringVar(&opts.logFile, "log-file", defaultLogFile, "application log file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.channels < 1 {
		return fmt.Errorf("--channels must be at least 1, got %d", opts.channels)
	}

	log, err := logger.NewLogger(opts.logFile)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	cfg := acquire.Config{
		Port:     opts.port,
		Baud:     opts.baud,
		Channels: opts.channels,
		Calib:    acquire.ADCCalibration(accelDivider, xbeeVrefMV, accelOffsetMV, accelMVPerG),
		ValueMin: opts.rangeMin,
		ValueMax: opts.rangeMax,
	}

	var src acquire.Source
	if opts.synthetic {
		src = acquire.NewSyntheticSource(cfg)
	} else {
		src = acquire.NewXBeeSource(cfg, log)
	}

	var channels []sample.ChannelSpec
	if opts.channels == len(sample.AccelChannels) {
		channels = sample.AccelChannels
	} else {
		channels = sample.GenericChannels(opts.channels, "g")
	}

	queue := events.NewQueue()
	loop := acquire.NewLoop(src, queue, log)

	mon, err := monitor.New(monitor.Config{
		Channels:   channels,
		Capacity:   opts.capacity,
		RangeMin:   opts.rangeMin,
		RangeMax:   opts.rangeMax,
		OutDir:     opts.outDir,
		CSVPrefix:  opts.prefix + "-log",
		PlotPrefix: opts.prefix + "-plot",
	}, queue, loop.Errors(), log)
	if err != nil {
		return err
	}

	surface := display.New(channels)
	mon.OnDataChanged(func() {
		surface.Repaint(mon)
	})

	if err := loop.Start(); err != nil {
		return err
	}
	go mon.Run(ctx)

	quit := make(chan struct{})
	go readCommands(ctx, mon, log, quit)

	select {
	case <-sigCh:
		log.Info("[main] caught signal, shutting down")
	case <-quit:
		log.Info("[main] quit requested")
	}

	// stop producing, then let the consumer drain whatever is queued
	loop.Stop()
	err = loop.Wait()
	queue.Close()

	// an unsaved session would be lost on exit; close it out
	if ok, path, stopErr := mon.StopRecording(ctx); ok {
		if stopErr != nil {
			log.Error("[main] final export failed", zap.Error(stopErr))
		} else {
			log.Info("[main] final session exported", zap.String("csv", path))
		}
	}
	cancel()

	time.Sleep(100 * time.Millisecond)
	return err
}

// readCommands drives recording from stdin, standing in for the original
// start/stop/quit buttons.
func readCommands(ctx context.Context, mon *monitor.Monitor, log *zap.Logger, quit chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "start":
			ok, err := mon.StartRecording(ctx)
			if err != nil {
				return
			}
			if !ok {
				fmt.Println("already recording")
			}
		case "stop":
			ok, path, err := mon.StopRecording(ctx)
			switch {
			case err != nil:
				log.Error("[main] export failed, type retry to try again", zap.Error(err))
			case !ok:
				fmt.Println("not recording")
			default:
				fmt.Println("saved", path)
			}
		case "retry":
			ok, path, err := mon.RetryExport(ctx)
			switch {
			case err != nil:
				log.Error("[main] export failed again", zap.Error(err))
			case !ok:
				fmt.Println("nothing to retry")
			default:
				fmt.Println("saved", path)
			}
		case "quit", "q", "exit":
			close(quit)
			return
		}
	}
}
