package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/glovebot/pkg/cli/sh"
	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/glove"
	"github.com/robotalks/glovebot/pkg/link"
	"github.com/robotalks/glovebot/pkg/protocol"
)

func init() {
	link.SetupFlags()
}

func main() {
	flag.Parse()

	conn, err := link.NewConfig().Dial()
	if err != nil {
		glog.Fatalf("link: %v", err)
	}
	defer conn.Close()

	sender := protocol.NewSender(conn)
	hand := glove.NewVirtual()
	g := glove.New(hand, sender)
	if err := g.Start(); err != nil {
		glog.Fatalf("glove: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	runner := fx.NewRunnerWith(ctx).Go(g.SampleLoop, g.TransmitLoop)

	args := flag.Args()
	sh.New(g, hand, sender).Run(args...)
	cancel()
	if err := runner.Wait(); err != nil {
		glog.Errorf("glove: %v", err)
	}
	if len(args) > 0 {
		// flush the effect of a single command once the loops stopped.
		cc := fx.At(context.Background(), time.Now())
		err = g.Sample(cc)
		if err == nil {
			err = g.Transmit(cc)
		}
		if err != nil {
			glog.Errorf("glove: %v", err)
		}
	}
}
