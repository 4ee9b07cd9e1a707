package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

func TestExecutor_OrderedHeterogeneousBatch(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.json")
	p2 := filepath.Join(dir, "two.json")

	a := state.New()
	a.Performance.TargetFPS = 72
	b := state.New()
	b.Performance.TargetFPS = 144

	ops := []Op{
		NewSaveOp(a, p1),
		NewSaveOp(b, p2),
		NewLoadOp(p1),
		NewValidateOp(p2),
	}

	results := NewExecutor(nil, nil).Execute(context.Background(), ops)
	if len(results) != len(ops) {
		t.Fatalf("got %d results, want %d", len(results), len(ops))
	}

	for i, res := range results {
		if res.ID != ops[i].ID {
			t.Errorf("result %d is out of submission order", i)
		}
		if !res.OK() {
			t.Errorf("result %d (%s %s) failed: %v", i, res.Kind, res.Path, res.Err)
		}
	}

	loaded := results[2].State
	if loaded == nil {
		t.Fatal("load result carries no state")
	}
	if !reflect.DeepEqual(loaded, a) {
		t.Errorf("loaded tree differs from the one saved first:\n got %+v\nwant %+v", loaded, a)
	}
}

func TestExecutor_FailureDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	missing := filepath.Join(dir, "missing.json")

	ops := []Op{
		NewLoadOp(missing),
		NewSaveOp(state.New(), good),
		NewValidateOp(good),
	}

	results := NewExecutor(nil, nil).Execute(context.Background(), ops)

	if results[0].OK() {
		t.Error("loading a missing file should fail")
	}
	if !results[1].OK() {
		t.Errorf("save after a failed op should run: %v", results[1].Err)
	}
	if !results[2].OK() {
		t.Errorf("validate after a failed op should run: %v", results[2].Err)
	}
}

func TestExecutor_SaveRejectsInvalidState(t *testing.T) {
	st := state.New()
	st.Audio.MasterVolume = 9

	path := filepath.Join(t.TempDir(), "bad.json")
	results := NewExecutor(nil, nil).Execute(context.Background(), []Op{NewSaveOp(st, path)})

	if results[0].OK() {
		t.Fatal("saving an invalid tree should fail")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("failed save must not write the file")
	}
}

func TestExecutor_SaveWithoutState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.json")
	results := NewExecutor(nil, nil).Execute(context.Background(), []Op{
		{Kind: OpSave, Path: path},
	})
	if results[0].OK() {
		t.Fatal("save without a tree should fail")
	}
}

func TestExecutor_MigrateOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")

	st := state.New()
	saveRes := NewExecutor(nil, nil).Execute(context.Background(), []Op{NewSaveOp(st, path)})
	if !saveRes[0].OK() {
		t.Fatal(saveRes[0].Err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	legacy := strings.Replace(string(data), `"1.0.0"`, `"0.9.0"`, 1)
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	results := NewExecutor(nil, nil).Execute(context.Background(), []Op{
		NewMigrateOp(path),
		NewLoadOp(path),
	})
	if !results[0].OK() {
		t.Fatalf("migrate: %v", results[0].Err)
	}
	if !results[1].OK() {
		t.Fatalf("load after migrate: %v", results[1].Err)
	}
	if got := results[1].State.SchemaVersion; got != state.SchemaVersion {
		t.Errorf("schema version = %q, want %q", got, state.SchemaVersion)
	}
}

func TestExecutor_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "never.json")
	results := NewExecutor(nil, nil).Execute(ctx, []Op{
		NewSaveOp(state.New(), path),
		NewValidateOp(path),
	})

	if len(results) != 2 {
		t.Fatalf("got %d results, want one per queued op", len(results))
	}
	for i, res := range results {
		if res.OK() {
			t.Errorf("result %d should carry the context error", i)
		}
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("cancelled batch must not write files")
	}
}
