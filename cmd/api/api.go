package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/docs"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/metrics"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/queue"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/ratelimiter"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/service"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/store/mongo"
	"github.com/kerickkkkk/love-in-no-words-back-end-sub000/internal/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config             config
	logger             *zap.SugaredLogger
	rateLimiter        ratelimiter.Limiter
	storage            *mongo.Storage
	broker             queue.Broker
	displayBroker      queue.Broker
	orderService       *service.OrderService
	reservationService *service.ReservationService
	tableService       *service.TableService
	kitchenWorker      *worker.KitchenDisplayWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", app.createOrderHandler)
			r.Post("/preview", app.previewOrderHandler)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", app.listReservationsHandler)
			r.Post("/", app.createBookingHandler)
			r.Post("/seat", app.seatTableHandler)
			r.Patch("/{reservation_id}", app.editReservationHandler)
			r.Delete("/{reservation_id}", app.cancelReservationHandler)
		})

		r.Route("/tables", func(r chi.Router) {
			r.Post("/", app.createTableHandler)
			r.Get("/", app.listTablesHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if allow, retryAfter := app.rateLimiter.Allow(ip); !allow {
				w.Header().Set("Retry-After", retryAfter.String())
				app.writeJsonError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Love In No Words POS"
	docs.SwaggerInfo.Description = "Order fulfillment and reservation availability API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	if app.kitchenWorker != nil {
		if err := app.kitchenWorker.Start(); err != nil {
			return fmt.Errorf("failed to start kitchen display worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.kitchenWorker != nil {
			app.kitchenWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		for _, broker := range []queue.Broker{app.broker, app.displayBroker} {
			if broker == nil {
				continue
			}
			if err := broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
