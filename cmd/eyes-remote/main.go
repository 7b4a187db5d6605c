// Eyes-remote - sends expression commands to a running roboeyes daemon.
//
// Expressions are given as names or codes:
//
//	eyes-remote happy
//	eyes-remote -pause 2s surprised angry idle
//	eyes-remote -http 5
//	eyes-remote -snap face.png
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-roboeyes/internal/httpc"
	"github.com/teslashibe/go-roboeyes/pkg/eyes"
	"github.com/teslashibe/go-roboeyes/pkg/protocol"
)

func main() {
	host := flag.String("host", "localhost:8090", "Daemon host:port")
	useHTTP := flag.Bool("http", false, "Send over the REST API instead of the control websocket")
	pause := flag.Duration("pause", 0, "Delay between commands")
	snap := flag.String("snap", "", "Save the current frame to this PNG file and exit")
	flag.Parse()

	if *snap != "" {
		if err := saveFrame(*host, *snap); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: eyes-remote [flags] <expression>...")
		fmt.Fprintf(os.Stderr, "expressions: %s, or codes 0-%d\n", names(), eyes.ExpressionCount-1)
		flag.PrintDefaults()
		os.Exit(2)
	}

	ids := make([]eyes.Expression, 0, len(args))
	for _, arg := range args {
		id, ok := eyes.ParseExpression(arg)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown expression %q (try: %s)\n", arg, names())
			os.Exit(2)
		}
		ids = append(ids, id)
	}

	send := sendWS
	if *useHTTP {
		send = sendHTTP
	}
	if err := send(*host, ids, *pause); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

// sendWS pushes every command over a single control websocket.
func sendWS(host string, ids []eyes.Expression, pause time.Duration) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial("ws://"+host+"/ws/control", nil)
	if err != nil {
		return fmt.Errorf("control connect failed: %w", err)
	}
	defer conn.Close()

	for i, id := range ids {
		if i > 0 && pause > 0 {
			time.Sleep(pause)
		}
		msg, err := protocol.NewExpressionMessage(int(id), id.String())
		if err != nil {
			return err
		}
		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("send %s: %w", id, err)
		}
		fmt.Printf("✅ %s (%d)\n", id, int(id))
	}
	return nil
}

// sendHTTP posts each command to the REST API, one request per command.
func sendHTTP(host string, ids []eyes.Expression, pause time.Duration) error {
	for i, id := range ids {
		if i > 0 && pause > 0 {
			time.Sleep(pause)
		}
		url := fmt.Sprintf("http://%s/api/expression/%d", host, int(id))
		resp, err := httpc.Post(url, "application/json", nil)
		if err != nil {
			return err
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("daemon refused %s: %s", id, strings.TrimSpace(string(body)))
		}
		fmt.Printf("✅ %s (%d)\n", id, int(id))
	}
	return nil
}

// saveFrame fetches the daemon's latest rendered frame and writes the
// PNG to path.
func saveFrame(host, path string) error {
	resp, err := httpc.Get("http://" + host + "/api/frame")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	msg, err := protocol.ParseMessage(body)
	if err != nil {
		return err
	}
	frame, err := msg.GetFrameData()
	if err != nil {
		return err
	}
	png, err := frame.DecodeFrameData()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return err
	}

	fmt.Printf("✅ saved %dx%d frame to %s\n", frame.Width, frame.Height, path)
	return nil
}

func names() string {
	all := eyes.All()
	parts := make([]string, len(all))
	for i, id := range all {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
