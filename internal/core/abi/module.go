package abi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	pkgabi "github.com/wasmabi/serializer/pkg/abi"
	execution "github.com/wasmabi/serializer/pkg/interfaces/execution"
	log "github.com/wasmabi/serializer/pkg/interfaces/infrastructure/log"
)

// Config carries the ABI document and serialization budget a deployment wires in; the
// document is typically unmarshalled from a JSON file the host supplies.
type Config struct {
	Document             *pkgabi.Document
	MaxSerializationTime time.Duration
}

// ModuleParams lists this module's fx dependencies.
type ModuleParams struct {
	fx.In

	Config   Config
	Logger   log.Logger
	Registry prometheus.Registerer `optional:"true"`
}

// ModuleOutput lists the services this module provides to the fx graph.
type ModuleOutput struct {
	fx.Out

	Serializer execution.Serializer
	Stats      *Stats
}

// Module returns the fx module that validates the configured ABI document and exposes
// a ready-to-use Serializer.
func Module() fx.Option {
	return fx.Module("abi",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices validates params.Config.Document once and returns the Serializer and
// Stats the rest of the graph depends on.
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	reg := params.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	stats := NewStats(reg)

	serializer, err := NewSerializer(params.Config.Document, params.Config.MaxSerializationTime, stats, params.Logger)
	if err != nil {
		params.Logger.Errorf("abi: failed to validate document: %v", err)
		return ModuleOutput{}, err
	}
	params.Logger.Infof("abi: loaded document version %q (%d structs, %d typedefs)",
		params.Config.Document.Version, len(params.Config.Document.Structs), len(params.Config.Document.Typedefs))

	return ModuleOutput{Serializer: serializer, Stats: stats}, nil
}
