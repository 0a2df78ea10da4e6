package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// DefaultConfigPath is the default path to the benchkit.toml file
const DefaultConfigPath = "./benchkit.toml"
