package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	subwaymapper "github.com/radiation/subway-mapper"
	"github.com/radiation/subway-mapper/config"
	"github.com/radiation/subway-mapper/formatter"
	"github.com/radiation/subway-mapper/graph"
	"github.com/radiation/subway-mapper/gtfsrt"
	"github.com/radiation/subway-mapper/internal"
	"github.com/radiation/subway-mapper/metrics"
	"github.com/radiation/subway-mapper/server"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	line := flag.String("line", "", "MTA line group, e.g. ACE, NQRW (overrides config)")
	feed := flag.String("feed", "", "GTFS-RT TripUpdates URL or local .pb file (overrides line)")
	from := flag.String("from", "", "start stop_id (prompted when empty)")
	to := flag.String("to", "", "end stop_id (prompted when empty)")
	format := flag.String("format", "text", "text|json")
	flag.Parse()

	internal.InitLogging()
	if err := validateFlags(*mode, *format); err != nil {
		log.Fatal(err)
	}
	if err := config.LoadOrDefault(); err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg := config.Config
	if *line != "" {
		cfg.GTFSRT.Line = *line
	}
	if *feed != "" {
		cfg.GTFSRT.FeedURL = *feed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if *mode == "serve" && cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	client := gtfsrt.NewClient(
		gtfsrt.WithAPIKey(cfg.GTFSRT.APIKey),
		gtfsrt.WithTimeout(time.Duration(cfg.GTFSRT.TimeoutMS)*time.Millisecond),
	)
	planner, err := subwaymapper.Load(ctx, cfg, newFetcher(client), subwaymapper.WithMetrics(collector))
	if err != nil {
		log.Fatalf("no data available for processing: %v", err)
	}

	switch *mode {
	case "oneshot":
		if err := oneshot(os.Stdin, os.Stdout, planner, *from, *to, *format); err != nil {
			log.Fatal(err)
		}
	case "serve":
		if err := server.New(planner, cfg.Server, collector).Run(ctx); err != nil {
			log.Fatal(err)
		}
	}
}

// validateFlags rejects bad flag values before any network work
func validateFlags(mode, format string) error {
	switch mode {
	case "oneshot":
		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}
	case "serve":
	default:
		return fmt.Errorf("unknown mode %q (want oneshot or serve)", mode)
	}
	return nil
}

func oneshot(in io.Reader, out io.Writer, p *subwaymapper.Planner, from, to, format string) error {
	r := bufio.NewReader(in)
	var err error
	if from == "" {
		if from, err = prompt(r, out, "Enter the start station (Stop ID): "); err != nil {
			return err
		}
	}
	if to == "" {
		if to, err = prompt(r, out, "Enter the end station (Stop ID): "); err != nil {
			return err
		}
	}

	src, dst := graph.StopID(from), graph.StopID(to)
	log.Printf("calculating the fastest route from %s to %s", src, dst)
	res := p.Route(src, dst)

	switch format {
	case "json":
		resp := formatter.JSON(src, dst, res, p.Names(),
			formatter.WithRoutes(p.StopRoutes),
			formatter.WithCoords(p.StopCoord))
		_, err = fmt.Fprintln(out, string(formatter.BuildJSON(resp)))
		return err
	case "text":
		return formatter.Text(out, src, dst, res, p.Names())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func prompt(r *bufio.Reader, out io.Writer, label string) (string, error) {
	if _, err := io.WriteString(out, label); err != nil {
		return "", err
	}
	s, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", fmt.Errorf("read stop id: %w", err)
	}
	return strings.TrimSpace(s), nil
}
