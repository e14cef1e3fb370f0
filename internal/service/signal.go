// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

type signalSource interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type stdLibSignalSource struct{}

func (stdLibSignalSource) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (stdLibSignalSource) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// HandleSignals refetches the forecast bypassing the cache on SIGUSR1 and logs the
// current location on SIGUSR2.
func (s *Service) HandleSignals(ctx context.Context, sigChan chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigChan:
			switch sig {
			case syscall.SIGUSR1:
				s.cache.Invalidate(s.Query())
				s.refresh(ctx)
				s.printOutput(ctx)
			case syscall.SIGUSR2:
				var name string
				if current := s.Forecast(); current != nil {
					name = current.Location.Name
				}
				s.logger.Info("current forecast location", slog.String("query", s.Query().String()),
					slog.String("location", name))
			}
		}
	}
}
