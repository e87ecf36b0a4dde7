package diag

// Diagnostic code constants organized by phase
// F000-F099: model discovery and matching
// F100-F199: factory declarations
// F200-F299: source emission
// F300-F399: cross-module aggregation

const (
	// Discovery and matching (F000-F099)
	WarnNearMissReturn   = "F001"
	WarnNearMissArity    = "F002"
	WarnNearMissReceiver = "F003"
	WarnMissingMarker    = "F004"

	// Factory declarations (F100-F199)
	ErrFactoryNotInterface    = "F100"
	ErrNoSupportedStrategy    = "F101"
	ErrNoEligibleModels       = "F102"
	ErrDispatcherNotInterface = "F103"
	ErrNoDispatchMethods      = "F104"

	// Source emission (F200-F299)
	ErrSourceWrite   = "F200"
	ErrSourceFormat  = "F201"
	ErrArtifactWrite = "F202"

	// Cross-module aggregation (F300-F399)
	WarnNoArtifacts    = "F300"
	WarnManifestDecode = "F301"
	ErrArtifactRead    = "F302"
)
