package translator

import (
	"context"
	"testing"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/services"
	"subtrans/internal/subtitle"
)

var (
	testSource = language.Language{Code: "en", Name: "English"}
	testTarget = language.Language{Code: "zh", Name: "Chinese"}
)

// fakeBackend scripts per-call behavior keyed by the requested batch.
type fakeBackend struct {
	calls   [][]int
	handler func(items []Item) (map[int]string, error)
}

func (f *fakeBackend) Translate(_ context.Context, items []Item, _, _ language.Language) (map[int]string, error) {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	f.calls = append(f.calls, ids)
	return f.handler(items)
}

func echoTranslations(items []Item) map[int]string {
	out := make(map[int]string, len(items))
	for _, item := range items {
		out[item.ID] = "translated:" + item.Text
	}
	return out
}

func testSet(n int) subtitle.Set {
	set := make(subtitle.Set, 0, n)
	for i := 0; i < n; i++ {
		set = append(set, subtitle.Segment{
			Index: i + 1,
			Start: time.Duration(i) * time.Second,
			End:   time.Duration(i+1) * time.Second,
			Text:  "line " + string(rune('a'+i)),
		})
	}
	return set
}

func TestTranslateEmptySet(t *testing.T) {
	backend := &fakeBackend{handler: func(items []Item) (map[int]string, error) {
		t.Fatal("backend must not be called for an empty set")
		return nil, nil
	}}
	out, summary, err := New(backend).Translate(context.Background(), subtitle.Set{}, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(out) != 0 || summary.Total != 0 || len(summary.Failed) != 0 {
		t.Fatalf("unexpected result: out=%v summary=%+v", out, summary)
	}
	if len(backend.calls) != 0 {
		t.Fatalf("expected zero backend calls, got %d", len(backend.calls))
	}
}

func TestTranslatePreservesIdentityAndTiming(t *testing.T) {
	set := testSet(7)
	backend := &fakeBackend{handler: func(items []Item) (map[int]string, error) {
		return echoTranslations(items), nil
	}}
	out, summary, err := New(backend, WithBatchSize(3)).Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(out) != len(set) {
		t.Fatalf("expected %d segments, got %d", len(set), len(out))
	}
	for i := range set {
		if out[i].Index != set[i].Index || out[i].Start != set[i].Start || out[i].End != set[i].End {
			t.Fatalf("segment %d identity changed: %+v != %+v", i, out[i], set[i])
		}
		if out[i].Text != "translated:"+set[i].Text {
			t.Fatalf("segment %d text not translated: %q", i, out[i].Text)
		}
		// Source set must be untouched.
		if set[i].Text == out[i].Text {
			t.Fatalf("source segment %d was mutated", i)
		}
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("expected no failures, got %v", summary.Failed)
	}
	// 7 segments at batch size 3 partition as {3,3,1}.
	if len(backend.calls) != 3 {
		t.Fatalf("expected 3 batches, got %d: %v", len(backend.calls), backend.calls)
	}
}

func TestTranslateSplitRetryScenario(t *testing.T) {
	// 3 segments, batch size 2: batches {1,2} and {3}. {1,2} fails once,
	// splits to {1} and {2} which succeed; {3} succeeds directly.
	set := subtitle.Set{
		{Index: 1, Start: 0, End: time.Second, Text: "Hi"},
		{Index: 2, Start: time.Second, End: 2 * time.Second, Text: "Bye"},
		{Index: 3, Start: 2 * time.Second, End: 3 * time.Second, Text: "Ok"},
	}
	backend := &fakeBackend{handler: nil}
	backend.handler = func(items []Item) (map[int]string, error) {
		if len(items) > 1 {
			return nil, services.Wrap(services.ErrTimeout, "fake", "translate", "", nil)
		}
		return echoTranslations(items), nil
	}

	var progress [][2]int
	tr := New(backend, WithBatchSize(2), WithProgress(func(done, total int) {
		progress = append(progress, [2]int{done, total})
	}))
	out, summary, err := tr.Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("expected no failures, got %v", summary.Failed)
	}
	for i, want := range []string{"translated:Hi", "translated:Bye", "translated:Ok"} {
		if out[i].Text != want {
			t.Fatalf("segment %d: got %q want %q", i, out[i].Text, want)
		}
		if out[i].Index != set[i].Index || out[i].Start != set[i].Start || out[i].End != set[i].End {
			t.Fatalf("segment %d identity changed", i)
		}
	}
	wantCalls := [][]int{{1, 2}, {1}, {2}, {3}}
	if len(backend.calls) != len(wantCalls) {
		t.Fatalf("unexpected call pattern %v", backend.calls)
	}
	for i, want := range wantCalls {
		got := backend.calls[i]
		if len(got) != len(want) {
			t.Fatalf("call %d: got %v want %v", i, got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("call %d: got %v want %v", i, got, want)
			}
		}
	}
	last := progress[len(progress)-1]
	if last[0] != 3 || last[1] != 3 {
		t.Fatalf("expected final progress 3/3, got %v", last)
	}
}

func TestTranslateAllBatchesFailSinglesSucceed(t *testing.T) {
	set := testSet(10)
	backend := &fakeBackend{}
	backend.handler = func(items []Item) (map[int]string, error) {
		if len(items) > 1 {
			return nil, services.Wrap(services.ErrMalformed, "fake", "translate", "", nil)
		}
		return echoTranslations(items), nil
	}
	out, summary, err := New(backend, WithBatchSize(4)).Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("expected full success through isolation, got failures %v", summary.Failed)
	}
	for i := range set {
		if out[i].Text != "translated:"+set[i].Text {
			t.Fatalf("segment %d not translated: %q", i, out[i].Text)
		}
	}
}

func TestTranslateIsolatesDeterministicFailure(t *testing.T) {
	set := testSet(5)
	backend := &fakeBackend{}
	backend.handler = func(items []Item) (map[int]string, error) {
		for _, item := range items {
			if item.ID == 3 {
				return nil, services.Wrap(services.ErrUnreachable, "fake", "translate", "", nil)
			}
		}
		return echoTranslations(items), nil
	}
	out, summary, err := New(backend, WithBatchSize(5)).Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(summary.Failed) != 1 || summary.Failed[0] != 3 {
		t.Fatalf("expected exactly segment 3 to fail, got %v", summary.Failed)
	}
	for i := range set {
		if set[i].Index == 3 {
			if out[i].Text != set[i].Text {
				t.Fatalf("failed segment must keep original text, got %q", out[i].Text)
			}
			continue
		}
		if out[i].Text != "translated:"+set[i].Text {
			t.Fatalf("segment %d should be translated, got %q", set[i].Index, out[i].Text)
		}
	}
}

func TestTranslateTreatsPartialResultAsFailure(t *testing.T) {
	set := testSet(2)
	calls := 0
	backend := &fakeBackend{}
	backend.handler = func(items []Item) (map[int]string, error) {
		calls++
		if len(items) > 1 {
			// Drop one translation from the batch response.
			out := echoTranslations(items)
			delete(out, items[len(items)-1].ID)
			return out, nil
		}
		return echoTranslations(items), nil
	}
	_, summary, err := New(backend, WithBatchSize(2)).Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("expected split-retry to recover, got failures %v", summary.Failed)
	}
	if calls != 3 {
		t.Fatalf("expected incomplete batch to trigger split, got %d calls", calls)
	}
}

func TestTranslateRejectsExtraIDs(t *testing.T) {
	set := testSet(1)
	attempt := 0
	backend := &fakeBackend{}
	backend.handler = func(items []Item) (map[int]string, error) {
		attempt++
		if attempt == 1 {
			out := echoTranslations(items)
			out[999] = "stray"
			return out, nil
		}
		return echoTranslations(items), nil
	}
	// Batch of one with a bad response is a terminal failure for that
	// segment; the extra ID must not be applied anywhere.
	out, summary, err := New(backend).Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(summary.Failed) != 1 {
		t.Fatalf("expected terminal failure, got %v", summary.Failed)
	}
	if out[0].Text != set[0].Text {
		t.Fatalf("expected original text kept, got %q", out[0].Text)
	}
}

func TestTranslateCancellation(t *testing.T) {
	set := testSet(6)
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{}
	backend.handler = func(items []Item) (map[int]string, error) {
		cancel()
		return echoTranslations(items), nil
	}
	_, _, err := New(backend, WithBatchSize(2)).Translate(ctx, set, testSource, testTarget)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// The first batch resolved before cancellation was observed.
	if len(backend.calls) != 1 {
		t.Fatalf("expected dispatch to stop after cancellation, got %d calls", len(backend.calls))
	}
}

func TestTranslateProgressReachesTotalWithFailures(t *testing.T) {
	set := testSet(4)
	backend := &fakeBackend{}
	backend.handler = func(items []Item) (map[int]string, error) {
		return nil, services.Wrap(services.ErrTimeout, "fake", "translate", "", nil)
	}
	var last [2]int
	tr := New(backend, WithBatchSize(4), WithProgress(func(done, total int) {
		last = [2]int{done, total}
	}))
	_, summary, err := tr.Translate(context.Background(), set, testSource, testTarget)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(summary.Failed) != 4 {
		t.Fatalf("expected all 4 segments to fail, got %v", summary.Failed)
	}
	if last[0] != 4 || last[1] != 4 {
		t.Fatalf("expected progress to reach 4/4, got %v", last)
	}
}
