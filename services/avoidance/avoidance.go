// Package avoidance defines the maneuver the navigator hands control to when an object blocks
// its way, along with a registry of the available maneuvers.
package avoidance

import (
	"context"
	"slices"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/navcore/components/base"
	"go.viam.com/navcore/components/detector"
	"go.viam.com/navcore/components/odometry"
	"go.viam.com/navcore/logging"
	"go.viam.com/navcore/utils"
)

// An Avoider steers the base around an object in its way.
type Avoider interface {
	// AvoidObstacle blocks until the base has moved clear of the detected object. The target is
	// the coordinate the base is traveling to.
	AvoidObstacle(ctx context.Context, target r2.Point) error
}

// Dependencies are the collaborators an avoider can drive and observe.
type Dependencies struct {
	Base     base.Base
	Odometer odometry.Odometer
	Detector detector.Detector
}

// A Registration describes how to build an avoider model from its attributes.
type Registration struct {
	// AttributeMapConverter turns the configured attributes into the model's config struct.
	AttributeMapConverter func(attributes utils.AttributeMap) (interface{}, error)
	Constructor           func(ctx context.Context, deps Dependencies, conf interface{}, logger logging.Logger) (Avoider, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Registration{}
)

// Register makes an avoider model available under the given name. It panics if the model is
// already registered or the registration has no constructor.
func Register(model string, reg Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[model]; ok {
		panic(errors.Errorf("trying to register two avoiders with the same model %q", model))
	}
	if reg.Constructor == nil {
		panic(errors.Errorf("cannot register an avoider %q with a nil constructor", model))
	}
	registry[model] = reg
}

// Lookup returns the registration for the given model.
func Lookup(model string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[model]
	return reg, ok
}

// RegisteredModels returns the names of every registered model in sorted order.
func RegisteredModels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	models := lo.Keys(registry)
	slices.Sort(models)
	return models
}

// ConvertAttributes converts attributes with the model's converter. Models without one get the
// attributes back unchanged.
func ConvertAttributes(model string, attributes utils.AttributeMap) (interface{}, error) {
	reg, ok := Lookup(model)
	if !ok {
		return nil, utils.NewUnknownModelError("avoider", model)
	}
	if reg.AttributeMapConverter == nil {
		return attributes, nil
	}
	return reg.AttributeMapConverter(attributes)
}

// New builds the avoider of the given model.
func New(
	ctx context.Context,
	model string,
	attributes utils.AttributeMap,
	deps Dependencies,
	logger logging.Logger,
) (Avoider, error) {
	conf, err := ConvertAttributes(model, attributes)
	if err != nil {
		return nil, err
	}
	reg, _ := Lookup(model)
	return reg.Constructor(ctx, deps, conf, logger.Sublogger(model))
}
