package remote

import "time"

const (
	providerName       = "remote"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
	maxPackBytes       = 4 << 20
	maxAttackBias      = 0.2
)
