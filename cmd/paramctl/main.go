// Command paramctl sends parameter changes to a running cloudscape.
//
//	paramctl -addr 127.0.0.1:8080 fov=2 cameraAzimuth=90
package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"cloudscape/server"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "Parameter server address")
	list := flag.Bool("list", false, "Print the parameters the harness accepts and exit")
	flag.Parse()

	msgs, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", u.String(), err)
	}
	defer conn.Close()

	var hello server.Hello
	if err := conn.ReadJSON(&hello); err != nil {
		log.Fatalf("Failed to read greeting: %v", err)
	}
	if *list {
		fmt.Printf("state: %s\n", hello.State)
		for _, name := range hello.Parameters {
			fmt.Println(name)
		}
		return
	}

	if len(msgs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: paramctl [-addr host:port] name=value ...")
		os.Exit(2)
	}
	if err := conn.WriteJSON(msgs); err != nil {
		log.Fatalf("Failed to send parameters: %v", err)
	}
	for _, m := range msgs {
		fmt.Printf("%s = %g\n", m.Name, *m.Value)
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// parseArgs turns name=value arguments into messages
func parseArgs(args []string) ([]server.Message, error) {
	msgs := make([]server.Message, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		msgs = append(msgs, server.Message{Name: name, Value: &value})
	}
	return msgs, nil
}
