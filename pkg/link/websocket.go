package link

import (
	"context"
	"io"
	"net/http"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/glovebot/pkg/framework"
)

// ConnHandler handles an accepted link. The link is closed when it
// returns.
type ConnHandler func(ctx context.Context, rwc io.ReadWriteCloser) error

// Origin is sent when dialing websocket links.
const Origin = "http://localhost/"

// DialWebsocket dials a websocket link. Bytes are carried in binary
// frames, one frame per write.
func DialWebsocket(url string) (io.ReadWriteCloser, error) {
	conn, err := websocket.Dial(url, "", Origin)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}
	conn.PayloadType = websocket.BinaryFrame
	glog.Infof("link: connected to %s", url)
	return conn, nil
}

// WebsocketHandler creates the http.Handler accepting websocket links.
func WebsocketHandler(ctx context.Context, handler ConnHandler) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		conn.PayloadType = websocket.BinaryFrame
		remote := conn.Request().RemoteAddr
		glog.Infof("link: accepted %s", remote)
		err := handler(ctx, conn)
		if err != nil && err != io.EOF && err != context.Canceled {
			glog.Warningf("link: %s closed: %v", remote, err)
			return
		}
		glog.Infof("link: %s closed", remote)
	})
}

// ListenWebsocket serves websocket links on addr at DefaultPath until
// ctx is canceled.
func ListenWebsocket(ctx context.Context, addr string, handler ConnHandler) error {
	mux := http.NewServeMux()
	mux.Handle(DefaultPath, WebsocketHandler(ctx, handler))
	server := &http.Server{Addr: addr, Handler: mux}
	glog.Infof("link: listening on %s%s", addr, DefaultPath)
	return fx.RunWithContextCancel(ctx, func() { server.Close() }, func() error {
		return errors.Wrapf(server.ListenAndServe(), "listen %s", addr)
	})
}
