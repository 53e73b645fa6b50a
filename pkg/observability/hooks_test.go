package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnCompileStart(ctx, "machine.json")
	p.OnCompileComplete(ctx, "machine.json", 3, time.Second, nil)
	p.OnProjectStart(ctx, 3)
	p.OnProjectComplete(ctx, 3, 5, time.Second)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Workbench hooks
	w := NoopWorkbenchHooks{}
	w.OnSubmitStart(ctx, "dfa", 1)
	w.OnSubmitComplete(ctx, "dfa", 1, false, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "localhost:9000", "/convert/dfa")
	h.OnResponse(ctx, "POST", "localhost:9000", "/convert/dfa", 200, time.Second)
	h.OnError(ctx, "POST", "localhost:9000", "/convert/dfa", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	// Verify defaults are noop.
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Workbench().(NoopWorkbenchHooks); !ok {
		t.Error("Workbench() should return NoopWorkbenchHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customWorkbench := &testWorkbenchHooks{}
	SetWorkbenchHooks(customWorkbench)
	if Workbench() != customWorkbench {
		t.Error("SetWorkbenchHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testWorkbenchHooks struct{ NoopWorkbenchHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
