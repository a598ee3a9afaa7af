package app

import (
	"github.com/vk/parametry/internal/module"
	"github.com/vk/parametry/modules/calibration"
	"github.com/vk/parametry/modules/constants"
	"github.com/vk/parametry/modules/spectral"
	"github.com/vk/parametry/modules/topology"
)

// coreModules returns the definitive list of computation modules compiled
// into the parametry binary, in canonical registration order.
func coreModules() []module.Module {
	return []module.Module{
		topology.New(),
		constants.New(),
		calibration.New(),
		spectral.New(),
	}
}
