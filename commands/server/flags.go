package server

// Flag names shared by all commands. They are bound to viper, so each one
// can also be provided through the environment or the config file.
const (
	FlagHome     = "home"
	FlagBind     = "bind"
	FlagHTTPAddr = "http_addr"
	FlagDebug    = "debug"
	FlagLogLevel = "log_level"
)
