package cron

import (
	"context"
	"log"
	"time"

	"leadmarket/config"
	paymentRepo "leadmarket/database/repository/payment"

	"github.com/hibiken/asynq"
)

const TypePaymentSweep = "payments:sweep"

// InitPaymentSweeper runs the async worker that retires abandoned pending
// payments. A pending row with no completion is a legal terminal state for
// the purchase protocol itself; this sweep is the out-of-band cleanup that
// marks rows past the TTL as failed, using the same conditional-update
// discipline so it can never touch a payment that just completed.
func InitPaymentSweeper(payments paymentRepo.PaymentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentSweep, handleSweepTask(payments))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypePaymentSweep, nil)); err != nil {
		log.Fatalf("[PaymentSweeper] failed to register sweep schedule: %v", err)
	}

	go func() {
		log.Println("[PaymentSweeper] starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[PaymentSweeper] scheduler stopped: %v", err)
		}
	}()

	go func() {
		log.Println("[PaymentSweeper] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PaymentSweeper] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PaymentSweeper] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSweepTask(payments paymentRepo.PaymentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ttl := time.Duration(config.AppConfig.StalePaymentTTLHours) * time.Hour
		cutoff := time.Now().Add(-ttl)

		swept, err := payments.FailStalePending(ctx, cutoff)
		if err != nil {
			log.Printf("[PaymentSweeper] sweep failed: %v", err)
			return err
		}
		if swept > 0 {
			log.Printf("[PaymentSweeper] marked %d stale pending payments failed", swept)
		}
		return nil
	}
}
