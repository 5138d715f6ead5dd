package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestRPCClientRecords(t *testing.T) {
	m := NewRPCClient("")
	start := time.Now().Add(-200 * time.Millisecond)

	if inc := delta(t, rpcRequestsTotal.WithLabelValues("call", "unknown", "success"), func() {
		m.Observe("call", nil, start)
	}); inc != 1 {
		t.Fatalf("expected rpc call counter increment, got %v", inc)
	}

	if inc := delta(t, rpcRequestsTotal.WithLabelValues("call", "unknown", "error"), func() {
		m.Observe("call", errors.New("oops"), start)
	}); inc != 1 {
		t.Fatalf("expected rpc error counter increment, got %v", inc)
	}
}

func TestClickhouseRepositoryRecords(t *testing.T) {
	m := NewClickhouseRepository()
	start := time.Now()

	if inc := delta(t, clickhouseRepositoryRequestsTotal.WithLabelValues("insert_blocks", "unknown", "error"), func() {
		m.Observe("insert_blocks", "", errors.New("fail"), start)
	}); inc != 1 {
		t.Fatalf("expected repository error increment, got %v", inc)
	}

	if inc := delta(t, clickhouseRepositoryRowsTotal.WithLabelValues("insert_segments", "regtest"), func() {
		m.ObserveRows("insert_segments", "regtest", 3)
	}); inc != 3 {
		t.Fatalf("expected 3 rows, got %v", inc)
	}
}

func TestStoreRecords(t *testing.T) {
	m := NewStore("pebble")
	start := time.Now()

	if inc := delta(t, storeOperationsTotal.WithLabelValues("write", "pebble", "success"), func() {
		m.Observe("write", nil, start)
	}); inc != 1 {
		t.Fatalf("expected store write increment, got %v", inc)
	}
}

func TestBlockchainRecords(t *testing.T) {
	m := NewBlockchain("regtest")
	start := time.Now()

	if inc := delta(t, blockchainInsertTotal.WithLabelValues("regtest", "fork", "success"), func() {
		m.ObserveInsert("fork", nil, start)
	}); inc != 1 {
		t.Fatalf("expected fork insert increment, got %v", inc)
	}

	if inc := delta(t, blockchainInsertTotal.WithLabelValues("regtest", "rejected", "error"), func() {
		m.ObserveInsert("extend", errors.New("orphan"), start)
	}); inc != 1 {
		t.Fatalf("expected rejected insert increment, got %v", inc)
	}

	m.ObserveRenumber(7, start)
	if got := testutil.ToFloat64(blockchainSegments.WithLabelValues("regtest")); got != 7 {
		t.Fatalf("segments gauge = %v, want 7", got)
	}

	m.SetHeadHeight(42)
	if got := testutil.ToFloat64(blockchainHeadHeight.WithLabelValues("regtest")); got != 42 {
		t.Fatalf("head height gauge = %v, want 42", got)
	}
}

func TestScriptValidatorRecords(t *testing.T) {
	m := NewScriptValidator("")
	start := time.Now()

	if inc := delta(t, validatorInputsTotal.WithLabelValues("unknown"), func() {
		m.ObserveBlock(nil, 5, start)
	}); inc != 5 {
		t.Fatalf("expected 5 inputs, got %v", inc)
	}

	if inc := delta(t, validatorSignatureCacheTotal.WithLabelValues("unknown", "hit"), func() {
		m.ObserveSignatureCache(true)
	}); inc != 1 {
		t.Fatalf("expected cache hit increment, got %v", inc)
	}
}

func TestFollowerRecords(t *testing.T) {
	m := NewFollower("mainnet")
	start := time.Now().Add(-time.Second)

	if inc := delta(t, followerSyncTotal.WithLabelValues("mainnet", "success"), func() {
		m.ObserveSync(nil, 10, start)
	}); inc != 1 {
		t.Fatalf("expected sync increment, got %v", inc)
	}

	m.SetOrphans(3)
	if got := testutil.ToFloat64(followerOrphans.WithLabelValues("mainnet")); got != 3 {
		t.Fatalf("orphan gauge = %v, want 3", got)
	}
}
