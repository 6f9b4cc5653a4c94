package main

import (
	"context"
	"flag"
	"os"
	"reflect"
	"strings"

	"github.com/golang/glog"

	fx "github.com/robotalks/glovebot/pkg/framework"
	"github.com/robotalks/glovebot/pkg/telemetry"
)

var (
	mqttURL = "mqtt://localhost:1883/"
)

func init() {
	if val := os.Getenv(telemetry.EnvURL); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()

	q, err := telemetry.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Fatal(err)
	}
	q.Sub("#", func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/"+telemetry.TopicMeta) {
			glog.Infof("%s: %s", topic, string(payload))
			return
		}
		msg, err := telemetry.Decode(topic, payload)
		if err != nil {
			glog.Warningf("%s: bad message: %v", topic, err)
			return
		}
		if msg == nil {
			return
		}
		glog.Infof("%s: [%s] %s", topic,
			reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), msg.String())
	})
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		glog.Fatalf("connect %s: %v", mqttURL, token.Error())
	}
	defer q.Close()

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	runner.Wait()
}
