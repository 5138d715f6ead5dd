package service

import "time"

const (
	defaultWorkerCount   = 8
	defaultBatchSize     = 2000
	defaultMaxReorgDepth = 1000
	defaultOrphanTTL     = 10 * time.Minute

	sleepDuration     = 5 * time.Second
	idleSleepDuration = 30 * time.Second

	blockBatcherCapacity      = 1000
	blockBatcherFlushInterval = 5 * time.Second
	blockBatcherRPS           = 20
)
