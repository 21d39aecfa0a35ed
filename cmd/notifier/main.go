package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/adapter/http/middleware"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/entities"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/watch"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	var (
		apiURL   = flag.String("api", "http://localhost:8080", "base URL of the marketplace API")
		email    = flag.String("email", "", "actor email")
		role     = flag.String("role", "client", "actor role: client or provider")
		interval = flag.Duration("interval", watch.DefaultInterval, "poll period")
	)
	flag.Parse()

	actor := transition.Actor{Role: transition.Role(*role), Email: *email}
	if actor.Email == "" || (actor.Role != transition.RoleClient && actor.Role != transition.RoleProvider) {
		log.Fatalf("usage: notifier -email <email> -role client|provider [-api url] [-interval 15s]")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := watch.NewBus()
	events, cancel := bus.Subscribe()
	defer cancel()

	loop := watch.NewLoop(newHTTPFetch(*apiURL, actor), actor, bus, *interval)

	go func() {
		for e := range events {
			switch e.Type {
			case watch.EventNewRequest:
				log.Printf("[notifier] new request %s category=%s emergency=%t", e.Request.ID, e.Request.Category, e.Request.IsEmergency)
			case watch.EventQuoteReceived:
				log.Printf("[notifier] quote received for request %s value=%v provider=%s", e.Request.ID, deref(e.Request.Quote), e.Request.ProviderEmail)
			case watch.EventQuoteAccepted:
				log.Printf("[notifier] quote accepted on request %s client=%s", e.Request.ID, e.Request.ClientEmail)
			case watch.EventRequestCancelled:
				log.Printf("[notifier] request %s cancelled by client", e.Request.ID)
			}
		}
	}()

	log.Printf("[notifier] watching as %s (%s) every %s", actor.Email, actor.Role, *interval)
	loop.Run(ctx)
}

func newHTTPFetch(apiURL string, actor transition.Actor) watch.FetchFunc {
	client := &http.Client{Timeout: 10 * time.Second}
	url := apiURL + "/v1/requests"

	return func(ctx context.Context) ([]entities.ServiceRequest, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set(middleware.HeaderUserEmail, actor.Email)
		req.Header.Set(middleware.HeaderUserRole, string(actor.Role))

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("list requests returned status %d", resp.StatusCode)
		}

		var requests []entities.ServiceRequest
		if err := json.NewDecoder(resp.Body).Decode(&requests); err != nil {
			return nil, err
		}
		return requests, nil
	}
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
