package common

const (
	ComponentFirehose     = "firehose"
	ComponentFetcher      = "fetcher"
	ComponentRPCSource    = "rpc-source"
	ComponentChainTracker = "chain-tracker"
	ComponentArchive      = "archive"
	ComponentIngester     = "ingester"
	ComponentGRPCServer   = "grpc-server"
	ComponentAPI          = "api"
	ComponentMaintenance  = "maintenance"
)

var AllComponents = map[string]struct{}{
	ComponentFirehose:     {},
	ComponentFetcher:      {},
	ComponentRPCSource:    {},
	ComponentChainTracker: {},
	ComponentArchive:      {},
	ComponentIngester:     {},
	ComponentGRPCServer:   {},
	ComponentAPI:          {},
	ComponentMaintenance:  {},
}
