package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Smoke-tests a running server: creates a session, streams a few form
// edits over the live preview socket and claims the resulting card.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := flag.String("base", "127.0.0.1:"+port, "server host:port")
	flag.Parse()

	res, err := http.Post("http://"+*base+"/api/v1/session", "application/json", bytes.NewReader(nil))
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	var sess struct {
		Token string `json:"token"`
	}
	err = json.NewDecoder(res.Body).Decode(&sess)
	res.Body.Close()
	if err != nil || sess.Token == "" {
		log.Fatalf("decode session (status %d): %v", res.StatusCode, err)
	}

	wsURL := fmt.Sprintf("ws://%s/ws/preview?token=%s", *base, url.QueryEscape(sess.Token))
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func(want string) {
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("waiting for %s: %v", want, err)
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		log.Printf("got %s: %s", obj["type"], string(msg))
		if obj["type"] != want {
			log.Fatalf("expected %s", want)
		}
	}

	send := func(v any) {
		if err := conn.WriteJSON(v); err != nil {
			log.Fatalf("write: %v", err)
		}
	}

	read("ready")

	// followers typed one digit at a time: ineligible, then eligible
	for _, followers := range []int{4, 42, 420, 4200} {
		send(map[string]any{
			"type": "form",
			"data": map[string]any{
				"username":     "smoke_test",
				"platform":     "github",
				"followers":    followers,
				"contribution": "I write code for open source projects",
			},
		})
		read("preview")
	}

	send(map[string]any{"type": "claim"})
	read("claimed")

	log.Println("smoke test finished")
}
