// File: cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"shuttle/config"
	bookingRepo "shuttle/database/repository/booking"
	"shuttle/models"
	bookingSvc "shuttle/services/booking"
	"shuttle/services/notification"
)

// Sweep task types. The scheduler enqueues them on a fixed cadence and
// the worker mux fans them out; payloads are empty because each sweep
// rescans the database itself.
const (
	TypeExpirySweep = "sweep:expired_holds"
	TypeStaleSweep  = "sweep:stale_bookings"
)

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the asynq client the dispatcher enqueues on.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpts())
}

// InitSweepWorker runs the async worker in background. It serves the
// sweep tasks and the outbound push queue.
func InitSweepWorker(reservations bookingSvc.ReservationService, bookings bookingRepo.BookingRepository, sender notification.Sender) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpirySweep, handleExpirySweep(reservations, bookings))
	mux.HandleFunc(TypeStaleSweep, handleStaleSweep(reservations, bookings))
	mux.HandleFunc(notification.TypePushSend, handlePushTask(sender))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// InitSweepScheduler registers the periodic sweep entries and runs the
// scheduler in background.
func InitSweepScheduler() {
	scheduler := asynq.NewScheduler(queueRedisOpts(), &asynq.SchedulerOpts{
		Location: time.Local,
	})

	if _, err := scheduler.Register(config.AppConfig.ExpirySweepSpec, asynq.NewTask(TypeExpirySweep, nil)); err != nil {
		log.Fatalf("[SweepScheduler] failed to register expiry sweep: %v", err)
	}
	if _, err := scheduler.Register(config.AppConfig.StaleSweepSpec, asynq.NewTask(TypeStaleSweep, nil)); err != nil {
		log.Fatalf("[SweepScheduler] failed to register stale sweep: %v", err)
	}

	go func() {
		log.Println("[SweepScheduler] starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SweepScheduler] scheduler stopped: %v", err)
		}
	}()
}

// handleExpirySweep releases every hold whose deadline has passed,
// returning the seats to the pool.
func handleExpirySweep(reservations bookingSvc.ReservationService, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		expired, err := bookings.ListExpiredHolds(ctx, time.Now())
		if err != nil {
			log.Printf("[ExpirySweep] scan failed: %v", err)
			return err
		}
		released := 0
		for i := range expired {
			if err := reservations.Release(ctx, expired[i].ID); err != nil {
				log.Printf("[ExpirySweep] failed to release booking %s: %v", expired[i].ID, err)
				continue
			}
			released++
		}
		if len(expired) > 0 {
			log.Printf("[ExpirySweep] released %d/%d expired hold(s)", released, len(expired))
		}
		return nil
	}
}

// handleStaleSweep cancels bookings that sat waiting for staff
// verification past the configured cutoff.
func handleStaleSweep(reservations bookingSvc.ReservationService, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		cutoff := time.Now().Add(-config.StaleAfter())
		stale, err := bookings.ListStaleUnverified(ctx, cutoff)
		if err != nil {
			log.Printf("[StaleSweep] scan failed: %v", err)
			return err
		}
		cancelled := 0
		for i := range stale {
			if err := reservations.Cancel(ctx, stale[i].ID, "Booking expired before staff verification."); err != nil {
				log.Printf("[StaleSweep] failed to cancel booking %s: %v", stale[i].ID, err)
				continue
			}
			cancelled++
		}
		if len(stale) > 0 {
			log.Printf("[StaleSweep] cancelled %d/%d stale booking(s)", cancelled, len(stale))
		}
		return nil
	}
}

func handlePushTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PushHandler] invalid payload: %v", err)
			return err
		}
		if err := sender.Send(ctx, p); err != nil {
			log.Printf("[PushHandler] failed to send push to %s %s: %v", p.Target, p.ID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SweepWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
