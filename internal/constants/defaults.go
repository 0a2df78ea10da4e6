package constants

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// DefaultGoVersion is the default Go version when not provided at build time
const DefaultGoVersion = "unknown"

// DefaultQueueSize is the pool queue capacity when none is configured.
const DefaultQueueSize = 100

// DefaultAddIterations is how many times each add candidate is repeated.
const DefaultAddIterations = 1_000_000

// DefaultReduceSize is the length of the input slice for the reduce suite.
const DefaultReduceSize = 1_000_000

// MetricsNamespace prefixes every exported Prometheus metric.
const MetricsNamespace = "benchkit"
