package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/link"
	"github.com/robotalks/glovebot/pkg/sim"
	"github.com/robotalks/glovebot/pkg/telemetry"
	"github.com/robotalks/glovebot/pkg/vehicle"
)

// simInterval is the physics step of the simulated vehicle.
const simInterval = 10 * time.Millisecond

func init() {
	link.SetupFlags()
	sim.SetupFlags()
	telemetry.SetupFlags()
}

func main() {
	flag.Parse()

	hw := sim.NewConfig().NewVehicle()
	v := vehicle.New(hw)
	runner := fx.NewRunner().HandleSignals()

	if conf := telemetry.NewConfig(); conf.Enabled() {
		pub, err := conf.NewPublisher(nil)
		if err != nil {
			glog.Fatalf("telemetry: %v", err)
		}
		pub.Attach(v)
		runner.Go(pub)
	}

	linkConf := link.NewConfig()
	serve := fx.RunFunc(func(ctx context.Context) error {
		return linkConf.Serve(ctx, func(ctx context.Context, rwc io.ReadWriteCloser) error {
			glog.Info("link connected")
			return v.Intake.Pump(ctx, rwc)
		})
	})

	runner.Go(
		v,
		fx.NewLoop("sim", simInterval).AddController(hw),
		fx.NamedRun("link", serve),
	)
	if err := runner.Wait(); err != nil {
		glog.Fatal(err)
	}
}
