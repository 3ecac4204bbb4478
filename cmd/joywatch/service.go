package main

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"

	"joytick/joystick"
)

// tally counts dispatched events for the status endpoint.
type tally struct {
	mu     sync.Mutex
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) inc(ev joystick.Event) {
	t.mu.Lock()
	t.counts[ev.String()]++
	t.mu.Unlock()
}

func (t *tally) snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

type statusResponse struct {
	Response string         `json:"response"`
	Error    string         `json:"error,omitempty"`
	Name     string         `json:"name"`
	Pressed  bool           `json:"pressed"`
	X        *int32         `json:"x,omitempty"`
	Y        *int32         `json:"y,omitempty"`
	Events   map[string]int `json:"events"`
}

type apiHandler struct {
	m     *joystick.Manager
	dev   *joystick.Device
	name  string
	tally *tally

	secret string
	user   string
	realm  string
}

func newHandler(m *joystick.Manager, dev *joystick.Device, name, secret string) *apiHandler {
	return &apiHandler{
		m:      m,
		dev:    dev,
		name:   name,
		tally:  newTally(),
		secret: secret,
		user:   "joywatch",
		realm:  "joywatch",
	}
}

// watch points every listed event kind at the handler's tally, so the
// status endpoint reports what the device has been doing.
func (h *apiHandler) watch(events []joystick.Event) error {
	for _, ev := range events {
		err := h.m.OnEvent(h.dev, ev, func(name string, ev joystick.Event, val int) {
			h.tally.inc(ev)
			log.Printf("%s: %s (%d)", name, ev, val)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// BasicAuth - middleware to authenticate users
func (h *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(h.user)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(h.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+h.realm+`"`)
			w.WriteHeader(401)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAnswer(w http.ResponseWriter, sr statusResponse) {
	output, _ := json.Marshal(sr)
	w.Write(output)
}

func (h *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	pressed, err := h.m.ReadStatus(h.dev)
	if err != nil {
		writeAnswer(w, statusResponse{Response: "BAD", Error: err.Error(), Name: h.name})
		return
	}

	sr := statusResponse{
		Response: "OK",
		Name:     h.name,
		Pressed:  pressed,
		Events:   h.tally.snapshot(),
	}
	// axes only exist on analog devices
	x, y, err := h.m.CalibratedXY(h.dev)
	if err == nil {
		sr.X, sr.Y = &x, &y
	} else if !errors.Is(err, joystick.ErrInvalidParam) {
		sr.Response, sr.Error = "BAD", err.Error()
	}
	writeAnswer(w, sr)
}

// apiScanTime accepts a duration string body, e.g. "50ms"
func (h *apiHandler) apiScanTime(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err == nil {
		var d time.Duration
		d, err = time.ParseDuration(string(body))
		if err == nil {
			err = h.m.SetScanTime(d)
		}
	}
	if err != nil {
		w.WriteHeader(400)
		writeAnswer(w, statusResponse{Response: "BAD", Error: err.Error(), Name: h.name})
		return
	}
	writeAnswer(w, statusResponse{Response: "OK", Name: h.name})
}

type httpService struct {
	srv     *http.Server
	handler *apiHandler
}

func (h *httpService) launch(handler *apiHandler, addr string) {
	h.handler = handler
	r := mux.NewRouter()

	// auth middleware
	r.Use(handler.BasicAuth)
	// api server
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/scan-time", handler.apiScanTime).Methods("POST")

	h.srv = &http.Server{Addr: addr, Handler: r}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("starting joywatch http server")
		err := h.srv.ListenAndServe()
		log.Print(err)
		log.Print("exiting joywatch http server")
	}()
}

func (h *httpService) stop() {
	h.srv.Shutdown(context.Background())
}
