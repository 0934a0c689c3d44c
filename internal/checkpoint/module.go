package checkpoint

import (
	"context"

	"go.uber.org/fx"

	log "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

// Config carries the on-disk path the checkpoint store opens.
type Config struct {
	Path string
}

// ModuleParams lists this module's fx dependencies.
type ModuleParams struct {
	fx.In

	Config Config
	Logger log.Logger
}

// Module returns the fx module that opens the checkpoint store and closes it on
// shutdown.
func Module() fx.Option {
	return fx.Module("checkpoint",
		fx.Provide(func(params ModuleParams) (*Store, error) {
			store := New(params.Logger)
			if !store.Init(params.Config.Path) {
				return nil, errInit(params.Config.Path)
			}
			return store, nil
		}),
		fx.Invoke(func(lc fx.Lifecycle, store *Store) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return store.Close()
				},
			})
		}),
	)
}

func errInit(path string) error {
	return &initError{path: path}
}

type initError struct{ path string }

func (e *initError) Error() string { return "checkpoint: failed to open store at " + e.path }
