// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Relayer interface {
	Relay(ctx context.Context) error
}

// StartSweeperJob relays pending transfers every interval until ctx is
// cancelled.
func StartSweeperJob(ctx context.Context, r Relayer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Stopping pending transfer sweeper")
			return
		case <-ticker.C:
			log.Debug().Msg("Sweeping pending transfers")
			if err := r.Relay(ctx); err != nil {
				log.Err(err).Msg("Failed relaying pending transfers")
			}
		}
	}
}
