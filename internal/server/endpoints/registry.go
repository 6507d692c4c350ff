package endpoints

import (
	"github.com/slab-tools/slab/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// System
		&HealthEndpoint{},

		// Single-run OUTCAR analysis
		&SummaryEndpoint{},
		&DiagnosticsEndpoint{},
		&ConvergenceProfileEndpoint{},
		&IonicSeriesEndpoint{},
		&ExportEndpoint{},

		// Batch analysis
		&BatchSummaryEndpoint{},
		&BatchDiagnosticsEndpoint{},
		&BatchInsightsEndpoint{},
		&DiscoverEndpoint{},

		// Electronic structure
		&ElectronicMetadataEndpoint{},
		&DosProfileEndpoint{},

		// Input generation
		&RelaxGenerateEndpoint{},
	}
}
