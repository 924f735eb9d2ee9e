package system

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

type ShutdownHandler func()

// RegisterGracefulShutdownHandler runs the handler on SIGINT/SIGTERM before
// exiting. Used to release temporary resources such as cloned working
// directories on every exit path.
func RegisterGracefulShutdownHandler(handler ShutdownHandler) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		handler()
		log.Info().Str("signal", sig.String()).Msg("Commitleak has been terminated")
		os.Exit(1)
	}()
}
