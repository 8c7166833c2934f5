package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnStageStart(ctx, StagePartition, "GAPDH")
	p.OnStageComplete(ctx, StageCluster, "GAPDH", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &recordingHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestRecordingHooks(t *testing.T) {
	h := &recordingHooks{}
	h.OnStageStart(context.Background(), StageRegions, "ACTB")
	h.OnStageComplete(context.Background(), StageRegions, "ACTB", time.Millisecond, nil)
	if len(h.started) != 1 || h.started[0] != StageRegions {
		t.Errorf("started = %v", h.started)
	}
	if len(h.completed) != 1 || h.completed[0] != StageRegions {
		t.Errorf("completed = %v", h.completed)
	}
}

type recordingHooks struct {
	started, completed []Stage
}

func (h *recordingHooks) OnStageStart(_ context.Context, s Stage, _ string) {
	h.started = append(h.started, s)
}

func (h *recordingHooks) OnStageComplete(_ context.Context, s Stage, _ string, _ time.Duration, _ error) {
	h.completed = append(h.completed, s)
}

type testCacheHooks struct{ NoopCacheHooks }
