package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"BoomDoomRadar/internal/collector"
	"BoomDoomRadar/internal/model"
)

func TestLoadState_Missing(t *testing.T) {
	st, err := LoadState(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Symbol != "" || st.TimeFrame != "" {
		t.Errorf("state = %+v, want zero", st)
	}
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := LoadState(path); err == nil {
		t.Error("corrupt state should fail")
	}
}

func TestDashboard_PersistsSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	l := &fakeLoader{results: map[string]*collector.LoadResult{
		"BONK": {Source: "fake", Series: hourly(30, 1)},
	}}
	d := New(l, nil, nil, nil, Options{StatePath: path, Now: func() time.Time { return testNow }})

	if _, err := d.Select(context.Background(), "bonk"); err != nil {
		t.Fatal(err)
	}
	d.SetTimeFrame("1w")

	st, err := LoadState(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Symbol != "BONK" || st.TimeFrame != model.TimeFrame1W || st.UpdatedAt.IsZero() {
		t.Errorf("state = %+v", st)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}
