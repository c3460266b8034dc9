package simulator

// Config is the simulator server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// Model id or provisioned throughput ARN requests are forwarded to.
	ModelArn string

	// Optional system instruction sent with every invocation unless the
	// request carries its own.
	System string
}
